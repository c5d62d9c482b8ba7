package voyager

import "testing"

func TestShape_ProfilePayloadIsValid(t *testing.T) {
	p := ParseProbe([]byte(`{"miniProfile":{"publicIdentifier":"jane-doe","entityUrn":"urn:li:fs_miniProfile:AAA"}}`))
	if p.Shape() != ProfileShape {
		t.Fatalf("expected ProfileShape, got %s", p.Shape())
	}
}

func TestShape_StatusOnlyPayloadIsInvalid(t *testing.T) {
	p := ParseProbe([]byte(`{"status":401}`))
	if p.Shape() != ErrorShape {
		t.Fatalf("expected ErrorShape, got %s", p.Shape())
	}
	if p.Status() != 401 {
		t.Fatalf("expected status 401, got %d", p.Status())
	}
}

func TestShape_StatusNextToProfileStaysValid(t *testing.T) {
	// A status field alone is not enough; only status WITHOUT profile data
	// marks the envelope as an error.
	p := ParseProbe([]byte(`{"status":200,"miniProfile":{"publicIdentifier":"jane-doe"}}`))
	if p.Shape() != ProfileShape {
		t.Fatalf("expected ProfileShape, got %s", p.Shape())
	}
}

func TestShape_EmptyBodyIsInvalid(t *testing.T) {
	if ParseProbe(nil).Shape() != ErrorShape {
		t.Fatal("nil body should classify as ErrorShape")
	}
	if ParseProbe([]byte("  ")).Shape() != ErrorShape {
		t.Fatal("blank body should classify as ErrorShape")
	}
}

func TestURNTail(t *testing.T) {
	cases := map[string]string{
		"urn:li:fs_miniProfile:ABC": "ABC",
		"urn:li:member:123456":      "123456",
		"plain":                     "plain",
		"":                          "",
	}
	for in, want := range cases {
		if got := URNTail(in); got != want {
			t.Errorf("URNTail(%q) = %q, want %q", in, got, want)
		}
	}
}
