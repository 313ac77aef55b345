package devtree

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/u-root/u-root/pkg/dt"
)

func fixture() *dt.Node {
	return NewNode("pmic@5a",
		[]dt.Property{
			StringProp(PropCompatible, "vendor,other", "active-semi,act8846"),
			U32Prop(PropReg, 0x5a),
			BoolProp("system-power-controller"),
		},
		NewNode("regulators", nil,
			NewNode("REG1", nil),
		),
		NewNode("pinctrl@1", nil),
	)
}

func TestSubnode(t *testing.T) {
	n := fixture()
	if c, ok := Subnode(n, "regulators"); !ok || c.Name != "regulators" {
		t.Fatalf("regulators not found: %v %v", c, ok)
	}
	if c, ok := Subnode(n, "pinctrl"); !ok || c.Name != "pinctrl@1" {
		t.Fatalf("unit-address match failed: %v %v", c, ok)
	}
	if _, ok := Subnode(n, "pinctrl@2"); ok {
		t.Fatal("explicit unit address must match exactly")
	}
	if _, ok := Subnode(n, "regs"); ok {
		t.Fatal("prefix must not match")
	}
	if _, ok := Subnode(nil, "regulators"); ok {
		t.Fatal("nil node must not match")
	}
}

func TestBoolAndU32(t *testing.T) {
	n := fixture()
	if !Bool(n, "system-power-controller") {
		t.Fatal("presence-only property should read true")
	}
	if Bool(n, "missing") {
		t.Fatal("absent property should read false")
	}
	if v, ok := U32(n, PropReg); !ok || v != 0x5a {
		t.Fatalf("reg = %#x %v", v, ok)
	}
	if _, ok := U32(n, "missing"); ok {
		t.Fatal("absent u32 should report !ok")
	}
}

func TestCompatibleOrder(t *testing.T) {
	got := Compatible(fixture())
	want := []string{"vendor,other", "active-semi,act8846"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("compatible = %q, want %q", got, want)
	}
	if Compatible(NewNode("x", nil)) != nil {
		t.Fatal("node without compatible should return nil")
	}
}

func TestEnabled(t *testing.T) {
	cases := []struct {
		props []dt.Property
		want  bool
	}{
		{nil, true},
		{[]dt.Property{StringProp(PropStatus, "okay")}, true},
		{[]dt.Property{StringProp(PropStatus, "ok")}, true},
		{[]dt.Property{StringProp(PropStatus, "disabled")}, false},
	}
	for i, c := range cases {
		if got := Enabled(NewNode("n", c.props)); got != c.want {
			t.Fatalf("case %d: Enabled = %v, want %v", i, got, c.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	if BaseName("pmic@5a") != "pmic" || BaseName("regulators") != "regulators" {
		t.Fatal("BaseName mismatch")
	}
}

func TestEncodeLoadRoundTrip(t *testing.T) {
	root := NewNode("", []dt.Property{U32Prop("#address-cells", 1)},
		NewNode("i2c@ff650000", nil, fixture()),
	)
	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		t.Fatal(err)
	}
	if b := buf.Bytes(); len(b) < 4 || !bytes.Equal(b[:4], []byte{0xd0, 0x0d, 0xfe, 0xed}) {
		t.Fatalf("missing FDT magic: % x", b[:4])
	}

	got, err := Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	bus, ok := Subnode(got, "i2c")
	if !ok {
		t.Fatal("i2c node lost")
	}
	pm, ok := Subnode(bus, "pmic")
	if !ok {
		t.Fatal("pmic node lost")
	}
	if !reflect.DeepEqual(Compatible(pm), []string{"vendor,other", "active-semi,act8846"}) {
		t.Fatalf("compatible = %q", Compatible(pm))
	}
	if v, ok := U32(pm, PropReg); !ok || v != 0x5a {
		t.Fatalf("reg = %#x %v", v, ok)
	}
	if !Bool(pm, "system-power-controller") {
		t.Fatal("boolean property lost")
	}
	if _, ok := Subnode(pm, "regulators"); !ok {
		t.Fatal("regulators lost")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load(bytes.NewReader([]byte("not a dtb at all, clearly"))); err == nil {
		t.Fatal("expected error")
	}
}
