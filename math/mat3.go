package math

import "github.com/chewxy/math32"

// Vec2 is a UV coordinate or offset.
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Mat3 is a 3x3 matrix used for 2D UV transforms, stored row-major and
// applied to row vectors: (u, v, 1) * M.
type Mat3 [3][3]float32

func Mat3Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func Mat3Zero() Mat3 {
	return Mat3{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
}

func (m Mat3) Mul(other Mat3) Mat3 {
	result := Mat3Zero()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// MulVec2 transforms a UV coordinate, treating it as the row vector (u, v, 1).
func (m Mat3) MulVec2(v Vec2) Vec2 {
	return Vec2{
		X: v.X*m[0][0] + v.Y*m[1][0] + m[2][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + m[2][1],
	}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

func Mat3Translation(offset Vec2) Mat3 {
	m := Mat3Identity()
	m[2][0] = offset.X
	m[2][1] = offset.Y
	return m
}

func Mat3Scale(scale Vec2) Mat3 {
	m := Mat3Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	return m
}

func Mat3Rotation(angle float32) Mat3 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Mat3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}
