package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("model-a", []string{"hello", "world"})

	if key == "" {
		t.Fatal("expected non-empty key")
	}
	if key != GenerateCacheKey("model-a", []string{"hello", "world"}) {
		t.Error("same inputs must produce the same key")
	}
	if key == GenerateCacheKey("model-b", []string{"hello", "world"}) {
		t.Error("different models must produce different keys")
	}
	if key == GenerateCacheKey("model-a", []string{"world", "hello"}) {
		t.Error("text order must affect the key")
	}
	// Separator matters: ["ab",""] and ["a","b"] are different batches.
	if GenerateCacheKey("m", []string{"ab", ""}) == GenerateCacheKey("m", []string{"a", "b"}) {
		t.Error("batch boundaries must affect the key")
	}
}
