package xml

import (
	"math/big"
	"time"
)

// WriteBooleanArray writes each item of v wrapped in an itemName element.
func (e *Encoder) WriteBooleanArray(itemName, itemNamespace string, v []bool) error {
	return writeArray(e, itemName, itemNamespace, v, e.WriteBoolean)
}

// WriteInt32Array writes each item of v wrapped in an itemName element.
func (e *Encoder) WriteInt32Array(itemName, itemNamespace string, v []int32) error {
	return writeArray(e, itemName, itemNamespace, v, e.WriteInt32)
}

// WriteInt64Array writes each item of v wrapped in an itemName element.
func (e *Encoder) WriteInt64Array(itemName, itemNamespace string, v []int64) error {
	return writeArray(e, itemName, itemNamespace, v, e.WriteInt64)
}

// WriteFloat32Array writes each item of v wrapped in an itemName element.
func (e *Encoder) WriteFloat32Array(itemName, itemNamespace string, v []float32) error {
	return writeArray(e, itemName, itemNamespace, v, e.WriteFloat32)
}

// WriteFloat64Array writes each item of v wrapped in an itemName element.
func (e *Encoder) WriteFloat64Array(itemName, itemNamespace string, v []float64) error {
	return writeArray(e, itemName, itemNamespace, v, e.WriteFloat64)
}

// WriteDecimalArray writes each item of v wrapped in an itemName element.
func (e *Encoder) WriteDecimalArray(itemName, itemNamespace string, v []big.Float) error {
	for i := range v {
		if err := e.WriteStartElement(itemName, itemNamespace, ""); err != nil {
			return err
		}
		if err := e.WriteDecimal(&v[i]); err != nil {
			return err
		}
		if err := e.WriteEndElement(); err != nil {
			return err
		}
	}
	return e.err
}

// WriteDateTimeArray writes each item of v wrapped in an itemName element.
func (e *Encoder) WriteDateTimeArray(itemName, itemNamespace string, v []time.Time) error {
	return writeArray(e, itemName, itemNamespace, v, e.WriteDateTime)
}

func writeArray[T any](e *Encoder, itemName, itemNamespace string, v []T, fn func(T) error) error {
	for _, item := range v {
		if err := e.WriteStartElement(itemName, itemNamespace, ""); err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
		if err := e.WriteEndElement(); err != nil {
			return err
		}
	}
	return e.err
}
