package validate

import "testing"

func TestName(t *testing.T) {
	if _, ok := Name("  Laptop  "); !ok {
		t.Fatal("trimmed name rejected")
	}
	if got, _ := Name(" Laptop "); got != "Laptop" {
		t.Fatalf("name not trimmed: %q", got)
	}
	if _, ok := Name("   "); ok {
		t.Fatal("blank name accepted")
	}
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	if _, ok := Name(string(long)); ok {
		t.Fatal("256-char name accepted")
	}
}

func TestUsername(t *testing.T) {
	for _, s := range []string{"rohit", "user.name", "a_b-c", "abc"} {
		if _, ok := Username(s); !ok {
			t.Fatalf("valid username rejected: %q", s)
		}
	}
	for _, s := range []string{"ab", "has space", "semi;colon", ""} {
		if _, ok := Username(s); ok {
			t.Fatalf("invalid username accepted: %q", s)
		}
	}
}

func TestPassword(t *testing.T) {
	if !Password("Pass1234") {
		t.Fatal("valid password rejected")
	}
	for _, s := range []string{"short1", "alllettersonly", "12345678"} {
		if Password(s) {
			t.Fatalf("weak password accepted: %q", s)
		}
	}
}
