package glprog

import (
	"errors"
	"strconv"

	"github.com/soypat/geometry/ms3"
)

// UniformKind is the numeric kind of a [Uniform] value.
type UniformKind uint8

const (
	KindInt UniformKind = iota + 1
	KindFloat
	KindMat4
)

func (k UniformKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindMat4:
		return "mat4"
	}
	return "UniformKind(" + strconv.Itoa(int(k)) + ")"
}

// Uniform is a value to upload to a uniform variable: 1 to 4 integer components,
// 1 to 4 float components or a 4x4 float matrix. The zero value is invalid.
type Uniform struct {
	kind UniformKind
	n    uint8
	i    [4]int32
	f    [16]float32
}

var (
	errUniformZero       = errors.New("glprog: invalid zero Uniform")
	errUniformComponents = errors.New("glprog: uniform must have 1 to 4 components")
)

// Ints returns an integer uniform value. v must have 1 to 4 elements.
func Ints(v ...int32) Uniform {
	u := Uniform{kind: KindInt, n: uint8(min(len(v), 255))}
	copy(u.i[:], v)
	return u
}

// Floats returns a float uniform value. v must have 1 to 4 elements.
func Floats(v ...float32) Uniform {
	u := Uniform{kind: KindFloat, n: uint8(min(len(v), 255))}
	copy(u.f[:4], v)
	return u
}

// Mat4 returns a 4x4 matrix uniform value.
func Mat4(m ms3.Mat4) Uniform {
	rowMajor := m.Array()
	var colMajor [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			colMajor[j*4+i] = rowMajor[i*4+j]
		}
	}
	return Mat4Array(colMajor)
}

// Mat4Array returns a 4x4 matrix uniform value from elements in column-major
// order, as OpenGL expects them.
func Mat4Array(colMajor [16]float32) Uniform {
	return Uniform{kind: KindMat4, n: 16, f: colMajor}
}

// Kind returns the numeric kind of u.
func (u Uniform) Kind() UniformKind { return u.kind }

// Len returns the number of components of u, 16 for matrices.
func (u Uniform) Len() int { return int(u.n) }

// Validate returns an error if u can not be uploaded.
func (u Uniform) Validate() error {
	switch u.kind {
	case KindInt, KindFloat:
		if u.n < 1 || u.n > 4 {
			return errUniformComponents
		}
	case KindMat4:
	default:
		return errUniformZero
	}
	return nil
}

// upload dispatches u to the driver call for its kind and length. u must be valid.
func (u *Uniform) upload(d Driver, loc int32) {
	switch u.kind {
	case KindInt:
		d.Uniformi(loc, u.i[:u.n])
	case KindFloat:
		d.Uniformf(loc, u.f[:u.n])
	case KindMat4:
		d.UniformMatrix4f(loc, &u.f)
	}
}
