package signing

import "testing"

func TestBuildBuilderHmacSignature(t *testing.T) {
	// Known-answer vectors computed independently.
	got := BuildBuilderHmacSignature("builder-secret", "1700000000", "POST", "/order", `{"x":1}`)
	want := "43e95d6178513001ca3483be7268470a8616375085ba3325e4ccb9c37951b1e1"
	if got != want {
		t.Fatalf("builder sig got=%s want=%s", got, want)
	}

	got = BuildBuilderHmacSignature("builder-secret", "1700000000", "GET", "/balance-allowance", "")
	want = "d14721f3aee4535d6a131f7148b36a34abe3e42bb9f8fe098e124f9d3007ef4f"
	if got != want {
		t.Fatalf("builder sig (no body) got=%s want=%s", got, want)
	}
}

func TestBuildUserHmacSignature_Base64Secret(t *testing.T) {
	// base64url secret decodes; signature comes back base64url.
	secret := "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="
	got := BuildUserHmacSignature(secret, "1700000000", "GET", "/data/orders", "")
	want := "Xk7ucqyxdXt4Rya-du9c6i0l0gqjxKd7WbJMhIZ0N4s="
	if got != want {
		t.Fatalf("user sig got=%s want=%s", got, want)
	}
}

func TestBuildUserHmacSignature_RawSecretFallback(t *testing.T) {
	// Not valid base64url: key is the raw string, output is hex.
	got := BuildUserHmacSignature("not-base64url!!", "1700000000", "POST", "/order", `{"a":2}`)
	want := "b1b4a7a5a1d35b65ef7499d0b5b0a48f31ddecd3718dd3a3b0907f113486f20d"
	if got != want {
		t.Fatalf("user raw sig got=%s want=%s", got, want)
	}
}

func TestBuildUserHmacSignature_BodyOnlyWhenPresent(t *testing.T) {
	secret := "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="
	empty := BuildUserHmacSignature(secret, "1700000000", "POST", "/order", "")
	withBody := BuildUserHmacSignature(secret, "1700000000", "POST", "/order", "{}")
	if empty == withBody {
		t.Fatal("body must change the signed message")
	}
}
