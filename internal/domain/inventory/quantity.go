package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind distingue stock contable de stock ilimitado (bienes digitales).
type Kind string

const (
	KindFinite    Kind = "finite"
	KindUnlimited Kind = "unlimited"
)

// UnlimitedLabel representación textual heredada del stock ilimitado.
const UnlimitedLabel = "Disponible"

// Quantity cantidad disponible de un producto: un número contable o ilimitado.
// El valor cero es una cantidad finita de 0.
type Quantity struct {
	kind   Kind
	amount int64
}

// Finite construye una cantidad contable.
func Finite(n int64) Quantity {
	return Quantity{kind: KindFinite, amount: n}
}

// Unlimited construye una cantidad sin seguimiento numérico.
func Unlimited() Quantity {
	return Quantity{kind: KindUnlimited}
}

// Kind devuelve la variante.
func (q Quantity) Kind() Kind {
	if q.kind == "" {
		return KindFinite
	}
	return q.kind
}

// IsUnlimited indica si la cantidad no se contabiliza.
func (q Quantity) IsUnlimited() bool { return q.kind == KindUnlimited }

// Amount devuelve la cantidad contable y false si es ilimitada.
func (q Quantity) Amount() (int64, bool) {
	if q.IsUnlimited() {
		return 0, false
	}
	return q.amount, true
}

// Available cantidad utilizable para decisiones de reposición: nunca negativa.
func (q Quantity) Available() int64 {
	if q.IsUnlimited() || q.amount < 0 {
		return 0
	}
	return q.amount
}

// Add aplica un delta con signo. Una cantidad ilimitada permanece ilimitada.
func (q Quantity) Add(delta int64) Quantity {
	if q.IsUnlimited() {
		return q
	}
	return Finite(q.amount + delta)
}

// Equal compara variante y cantidad.
func (q Quantity) Equal(o Quantity) bool {
	return q.Kind() == o.Kind() && q.amount == o.amount
}

func (q Quantity) String() string {
	if q.IsUnlimited() {
		return UnlimitedLabel
	}
	return strconv.FormatInt(q.amount, 10)
}

// ParseQuantity interpreta la forma textual heredada: un entero o "Disponible".
// Cualquier otro texto es un error; nunca se degrada a cero.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, UnlimitedLabel) || strings.EqualFold(s, string(KindUnlimited)) {
		return Unlimited(), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("cantidad inválida %q", s)
	}
	return Finite(n), nil
}

// MarshalJSON: número si es finita, "Disponible" si es ilimitada.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsUnlimited() {
		return json.Marshal(UnlimitedLabel)
	}
	return []byte(strconv.FormatInt(q.amount, 10)), nil
}

// UnmarshalJSON acepta número, texto numérico o "Disponible".
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseQuantity(s)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cantidad inválida: %w", err)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("cantidad no entera %s", n)
	}
	*q = Finite(v)
	return nil
}
