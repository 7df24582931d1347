package crypto

import (
	"bytes"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	cases := []Options{
		{HighSecurity: false, Compress: true},
		{HighSecurity: true, Compress: false},
		{HighSecurity: true, Compress: true},
		{HighSecurity: false, Compress: false},
	}
	for _, opts := range cases {
		plaintext := []byte("the quick brown fox jumps over the lazy dog")
		env, err := Seal(plaintext, "correcthorsebatterystaple1", opts)
		if err != nil {
			t.Fatalf("Seal(%+v): %v", opts, err)
		}
		if env[0]&flagCompressed != 0 != opts.Compress {
			t.Errorf("flags compressed bit mismatch for %+v", opts)
		}
		if env[0]&flagHighSecurity != 0 != opts.HighSecurity {
			t.Errorf("flags high-security bit mismatch for %+v", opts)
		}
		got, err := Open(env, "correcthorsebatterystaple1")
		if err != nil {
			t.Fatalf("Open(%+v): %v", opts, err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("round trip mismatch for %+v: got %q", opts, got)
		}
	}
}

func TestOpenWrongPasswordFails(t *testing.T) {
	env, err := Seal([]byte("data"), "rightpassword", Options{})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	_, err = Open(env, "wrongpassword")
	if err == nil {
		t.Fatal("expected DecryptFailure for wrong password")
	}
}

func TestOpenTamperedCiphertextFails(t *testing.T) {
	env, err := Seal([]byte("data"), "pw", Options{})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	env[len(env)-1] ^= 0xFF
	_, err = Open(env, "pw")
	if err == nil {
		t.Fatal("expected DecryptFailure for tampered ciphertext")
	}
}

func TestOpenWrongSaltLengthFails(t *testing.T) {
	env, err := Seal([]byte("data"), "pw", Options{})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	env[1] = 15 // corrupt the little-endian salt length field
	_, err = Open(env, "pw")
	if err == nil {
		t.Fatal("expected DecryptFailure for wrong salt length")
	}
}

func TestOpenTruncatedEnvelopeFails(t *testing.T) {
	env, err := Seal([]byte("data"), "pw", Options{})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	_, err = Open(env[:envelopeHeaderMin-1], "pw")
	if err == nil {
		t.Fatal("expected DecryptFailure for truncated envelope")
	}
}

func TestErrorMessagesAreUniform(t *testing.T) {
	env, _ := Seal([]byte("data"), "pw", Options{})

	tampered := append([]byte{}, env...)
	tampered[len(tampered)-1] ^= 0xFF
	_, err1 := Open(tampered, "pw")

	_, err2 := Open(env, "wrongpw")

	truncated := env[:envelopeHeaderMin-1]
	_, err3 := Open(truncated, "pw")

	if err1 == nil || err2 == nil || err3 == nil {
		t.Fatal("expected all three failure modes to error")
	}
	if err1.Error() != err2.Error() || err2.Error() != err3.Error() {
		t.Errorf("error messages differ: %q, %q, %q", err1, err2, err3)
	}
}
