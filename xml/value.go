package xml

import (
	"encoding/base64"
	"math"
	"math/big"
	"strconv"
	"time"

	smithytime "github.com/aws/smithy-datacontract/time"
)

// WriteString writes v as escaped character data.
func (e *Encoder) WriteString(v string) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.escapeText(v)
	return e.err
}

// WriteBoolean writes v as an xsd:boolean.
func (e *Encoder) WriteBoolean(v bool) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.scratch = strconv.AppendBool(e.scratch[:0], v)
	e.write(e.scratch)
	return e.err
}

// WriteInt32 writes v as an xsd:int.
func (e *Encoder) WriteInt32(v int32) error {
	return e.WriteInt64(int64(v))
}

// WriteInt64 writes v as an xsd:long.
func (e *Encoder) WriteInt64(v int64) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.scratch = strconv.AppendInt(e.scratch[:0], v, 10)
	e.write(e.scratch)
	return e.err
}

// WriteUint64 writes v as an xsd:unsignedLong.
func (e *Encoder) WriteUint64(v uint64) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.scratch = strconv.AppendUint(e.scratch[:0], v, 10)
	e.write(e.scratch)
	return e.err
}

// WriteFloat32 writes v as an xsd:float.
func (e *Encoder) WriteFloat32(v float32) error {
	return e.float(float64(v), 32)
}

// WriteFloat64 writes v as an xsd:double.
func (e *Encoder) WriteFloat64(v float64) error {
	return e.float(v, 64)
}

func (e *Encoder) float(v float64, bits int) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.scratch = encodeFloat(e.scratch[:0], v, bits)
	e.write(e.scratch)
	return e.err
}

// WriteDateTime writes v as an xsd:dateTime.
func (e *Encoder) WriteDateTime(v time.Time) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.scratch = smithytime.AppendDateTime(e.scratch[:0], v)
	e.write(e.scratch)
	return e.err
}

// WriteDuration writes v as an xsd:duration.
func (e *Encoder) WriteDuration(v time.Duration) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.scratch = smithytime.AppendDuration(e.scratch[:0], v)
	e.write(e.scratch)
	return e.err
}

// WriteBase64 writes v as xsd:base64Binary.
func (e *Encoder) WriteBase64(v []byte) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.encodeByteSlice(v)
	return e.err
}

// WriteDecimal writes v as an xsd:decimal. Nil writes nothing.
func (e *Encoder) WriteDecimal(v *big.Float) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	if v == nil {
		return nil
	}

	if i, accuracy := v.Int64(); accuracy == big.Exact {
		e.scratch = strconv.AppendInt(e.scratch[:0], i, 10)
	} else {
		e.scratch = v.Append(e.scratch[:0], 'f', -1)
	}
	e.write(e.scratch)
	return e.err
}

// WriteInteger writes v as an xsd:integer. Nil writes nothing.
func (e *Encoder) WriteInteger(v *big.Int) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	e.scratch = v.Append(e.scratch[:0], 10)
	e.write(e.scratch)
	return e.err
}

// encodeFloat formats v the way the xsd float and double types spell it.
func encodeFloat(dst []byte, v float64, bits int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "NaN"...)
	case math.IsInf(v, 1):
		return append(dst, "INF"...)
	case math.IsInf(v, -1):
		return append(dst, "-INF"...)
	}

	abs := math.Abs(v)
	fmt := byte('f')

	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmt = 'e'
		}
	}

	dst = strconv.AppendFloat(dst, v, fmt, -1, bits)

	if fmt == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}

	return dst
}

func (e *Encoder) encodeByteSlice(v []byte) {
	if len(v) == 0 {
		return
	}

	encodedLen := base64.StdEncoding.EncodedLen(len(v))
	if encodedLen <= 1024 {
		if cap(e.scratch) < encodedLen {
			e.scratch = make([]byte, encodedLen)
		}
		dst := e.scratch[:encodedLen]
		base64.StdEncoding.Encode(dst, v)
		e.write(dst)
		return
	}

	if e.err != nil {
		return
	}
	enc := base64.NewEncoder(base64.StdEncoding, e.w)
	_, err := enc.Write(v)
	e.setErr(err)
	e.setErr(enc.Close())
}
