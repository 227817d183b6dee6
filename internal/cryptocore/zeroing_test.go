package cryptocore

import (
	"bytes"
	"testing"
)

func TestSecureZero(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	SecureZero(data)

	for i, b := range data {
		if b != 0 {
			t.Errorf("SecureZero: byte %d = %d; want 0", i, b)
		}
	}
}

func TestSecureZeroEmpty(t *testing.T) {
	SecureZero(nil)
	SecureZero([]byte{})
}

func TestSecureZeroLarge(t *testing.T) {
	data := make([]byte, 1024*1024)
	for i := range data {
		data[i] = byte(i % 256)
	}

	SecureZero(data)

	zeros := make([]byte, len(data))
	if !bytes.Equal(data, zeros) {
		t.Error("SecureZero did not zero all bytes in large buffer")
	}
}

func TestSecureZeroMultiple(t *testing.T) {
	slice1 := []byte{1, 2, 3}
	slice2 := []byte{4, 5, 6, 7}
	slice3 := []byte{8, 9}

	SecureZeroMultiple(slice1, slice2, slice3)

	for i, b := range slice1 {
		if b != 0 {
			t.Errorf("slice1[%d] = %d; want 0", i, b)
		}
	}
	for i, b := range slice2 {
		if b != 0 {
			t.Errorf("slice2[%d] = %d; want 0", i, b)
		}
	}
	for i, b := range slice3 {
		if b != 0 {
			t.Errorf("slice3[%d] = %d; want 0", i, b)
		}
	}
}

func TestSecureZeroMultipleEmpty(t *testing.T) {
	SecureZeroMultiple()
	SecureZeroMultiple(nil)
	SecureZeroMultiple(nil, []byte{}, nil)
}

func TestKeyMaterial(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	km := NewKeyMaterial(data)

	if !bytes.Equal(km.Bytes(), data) {
		t.Error("Bytes() should return equivalent data")
	}
	if &km.Bytes()[0] == &data[0] {
		t.Error("KeyMaterial should make a copy of data")
	}
	if km.Len() != len(data) {
		t.Errorf("Len() = %d; want %d", km.Len(), len(data))
	}
	if km.IsClosed() {
		t.Error("IsClosed() should be false before Close()")
	}
}

func TestKeyMaterialClose(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

	km := NewKeyMaterial(data)
	internalData := km.Bytes()

	km.Close()

	if !km.IsClosed() {
		t.Error("IsClosed() should be true after Close()")
	}
	if km.Bytes() != nil {
		t.Error("Bytes() should return nil after Close()")
	}
	if km.Len() != 0 {
		t.Errorf("Len() = %d; want 0 after Close()", km.Len())
	}

	zeros := make([]byte, len(internalData))
	if !bytes.Equal(internalData, zeros) {
		t.Error("Internal data should be zeroed after Close()")
	}
}

func TestKeyMaterialCloseIdempotent(t *testing.T) {
	km := NewKeyMaterial([]byte{1, 2, 3, 4})

	km.Close()
	km.Close()
	km.Close()

	if !km.IsClosed() {
		t.Error("Should remain closed after multiple Close() calls")
	}
}

func TestKeyMaterialNil(t *testing.T) {
	km := NewKeyMaterial(nil)

	if km.Bytes() != nil {
		t.Error("Bytes() should return nil for nil input")
	}
	if km.Len() != 0 {
		t.Error("Len() should be 0 for nil input")
	}
	km.Close()
}

func TestSecretContext(t *testing.T) {
	sc := &SecretContext{
		Seed:         []byte{1, 2, 3, 4},
		X25519Scalar: []byte{5, 6, 7, 8},
		Passphrase:   []byte{9, 10, 11, 12},
		PIN:          []byte{13, 14, 15, 16},
		Argon2Output: []byte{17, 18, 19, 20},
		HKDFOutput:   []byte{21, 22, 23, 24},
	}

	seedRef := sc.Seed
	scalarRef := sc.X25519Scalar
	passRef := sc.Passphrase
	pinRef := sc.PIN
	argonRef := sc.Argon2Output
	hkdfRef := sc.HKDFOutput

	sc.Close()

	if sc.Seed != nil || sc.X25519Scalar != nil || sc.Passphrase != nil ||
		sc.PIN != nil || sc.Argon2Output != nil || sc.HKDFOutput != nil {
		t.Error("all fields should be nil after Close()")
	}

	zeros4 := make([]byte, 4)
	for name, ref := range map[string][]byte{
		"Seed": seedRef, "X25519Scalar": scalarRef, "Passphrase": passRef,
		"PIN": pinRef, "Argon2Output": argonRef, "HKDFOutput": hkdfRef,
	} {
		if !bytes.Equal(ref, zeros4) {
			t.Errorf("%s data should be zeroed", name)
		}
	}
}

func TestSecretContextCloseIdempotent(t *testing.T) {
	sc := &SecretContext{Seed: []byte{1, 2, 3, 4}}

	sc.Close()
	sc.Close()
	sc.Close()
}

func TestSecretContextNilFields(t *testing.T) {
	sc := &SecretContext{}
	sc.Close()
}
