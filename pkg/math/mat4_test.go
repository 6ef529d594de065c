package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func matApprox(a, b Mat4, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
}

func TestTranslatePoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformPoint(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v", got)
	}
	if m.Translation() != (Vec3{10, 20, 30}) {
		t.Errorf("Translation: got %v", m.Translation())
	}
}

func TestTranslateIgnoresDirection(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	if got := m.TransformDirection(Vec3{0, 0, 1}); got != (Vec3{0, 0, 1}) {
		t.Errorf("TransformDirection: got %v", got)
	}
}

func TestFromTRSOrder(t *testing.T) {
	// Scale first, then rotate 90 degrees about Y, then translate.
	m := FromTRS(Vec3{1, 0, 0}, QuatFromYaw(math32.Pi/2), Vec3{2, 2, 2})
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{1, 0, -2}
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("FromTRS point: got %v, want %v", got, want)
	}
}

func TestFromTRSMatchesProduct(t *testing.T) {
	tr := Vec3{3, -1, 2}
	r := QuatFromEuler(0.3, 1.1, -0.4)
	s := Vec3{0.5, 2, 1.5}
	want := Translate(tr).Mul(r.ToMat4()).Mul(Scale(s))
	if got := FromTRS(tr, r, s); !matApprox(got, want, 1e-5) {
		t.Errorf("FromTRS = %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := FromTRS(Vec3{4, 5, -6}, QuatFromEuler(0.2, -0.7, 1.3), Vec3{2, 3, 0.5})
	if got := m.Mul(m.Inverse()); !matApprox(got, Identity(), 1e-4) {
		t.Errorf("M * M^-1 = %v, want identity", got)
	}
}

func TestInverseSingular(t *testing.T) {
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	tt := m.Transpose()
	if tt[3] != 1 || tt[7] != 2 || tt[11] != 3 {
		t.Errorf("Transpose: got %v", tt)
	}
	if tt.Transpose() != m {
		t.Error("double transpose should be identity operation")
	}
}

func TestLookAtOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3Zero, Vec3Up)

	// The target lands on the -Z axis in view space.
	got := view.TransformPoint(Vec3Zero)
	if !got.ApproxEqual(Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("LookAt target in view space: got %v", got)
	}
	if got := view.TransformPoint(eye); !got.ApproxEqual(Vec3Zero, 1e-5) {
		t.Errorf("LookAt eye in view space: got %v", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(math32.Pi/4, 1, 0.1, 100)

	near := p.Project(Vec3{0, 0, -0.1})
	far := p.Project(Vec3{0, 0, -100})
	if math32.Abs(near.Z+1) > 1e-4 {
		t.Errorf("near plane depth = %v, want -1", near.Z)
	}
	if math32.Abs(far.Z-1) > 1e-3 {
		t.Errorf("far plane depth = %v, want 1", far.Z)
	}
}
