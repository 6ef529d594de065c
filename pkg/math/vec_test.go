package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	if got := (Vec2{3, 4}).Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	l := Vec2{3, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero Vec2 normalize = %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 5}
	if got := a.Min(b); got != (Vec3{-1, -2, 3}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{1, 2, 5}) {
		t.Errorf("Max = %v", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{2, 4, 6}, 0.5)
	if got != (Vec3{1, 2, 3}) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestVec3Distance(t *testing.T) {
	if got := (Vec3{1, 0, 0}).Distance(Vec3{4, 4, 0}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}
