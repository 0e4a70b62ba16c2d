package web

import (
	"net/http/httptest"
	"testing"
)

func TestContextValues(t *testing.T) {
	const key ContextKey = "answer"
	r := httptest.NewRequest("GET", "/", nil)

	if _, ok := GetValueFromContext[int](r, key); ok {
		t.Fatal("value present before it was added")
	}

	r = AddValueToContext(r, key, 42)
	if got, ok := GetValueFromContext[int](r, key); !ok || got != 42 {
		t.Errorf("got %v, %v", got, ok)
	}
	if _, ok := GetValueFromContext[string](r, key); ok {
		t.Error("wrong type must not be returned")
	}
}
