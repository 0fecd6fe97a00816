package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

func TestValueKey_Normalization(t *testing.T) {
	assert.Equal(t, ValueKey(30), ValueKey(30.0))
	assert.Equal(t, ValueKey(int8(30)), ValueKey(uint64(30)))
	assert.Equal(t, ValueKey("Alice"), ValueKey("alice"))
	assert.NotEqual(t, ValueKey("30"), ValueKey(30))
	assert.NotEqual(t, ValueKey(nil), ValueKey(""))
	assert.NotEqual(t, ValueKey(true), ValueKey(1))
}

func TestValueKey_MapsAreOrderIndependent(t *testing.T) {
	a := map[string]interface{}{"x": 1, "y": "Two", "z": []interface{}{3, "four"}}
	b := map[string]interface{}{"z": []interface{}{3.0, "FOUR"}, "y": "two", "x": 1.0}
	for i := 0; i < 20; i++ {
		assert.Equal(t, ValueKey(a), ValueKey(b))
	}
	assert.Equal(t, ValueKey(domain.Document(a)), ValueKey(b))
}

func TestFieldKey(t *testing.T) {
	key := FieldKey("role")
	assert.Equal(t, key(domain.Document{"role": "Admin"}), key(domain.Document{"role": "admin", "name": "x"}))
	assert.Equal(t, ValueKey("admin"), key(domain.Document{"role": "ADMIN"}))
	assert.Equal(t, ValueKey(nil), key(domain.Document{"name": "no role"}))
}

func TestFieldsKey(t *testing.T) {
	key := FieldsKey("city", "age")
	alice := domain.Document{"name": "Alice", "city": "Boston", "age": 30}
	bob := domain.Document{"name": "Bob", "city": "boston", "age": 30.0}
	carol := domain.Document{"name": "Carol", "city": "Boston", "age": 31}
	swapped := domain.Document{"city": 30, "age": "Boston"}

	assert.Equal(t, key(alice), key(bob))
	assert.NotEqual(t, key(alice), key(carol))
	assert.NotEqual(t, key(alice), key(swapped))
}

func TestPresentFieldKeys(t *testing.T) {
	keys := PresentFieldKeys("status")
	assert.Nil(t, keys(domain.Document{"name": "x"}))
	assert.Equal(t, []string{ValueKey("active")}, keys(domain.Document{"status": "Active"}))
	assert.Equal(t, []string{ValueKey(nil)}, keys(domain.Document{"status": nil}))
}

func TestValueKey_Unencodable(t *testing.T) {
	ch := make(chan int)
	assert.Equal(t, ValueKey(ch), ValueKey(ch))
}
