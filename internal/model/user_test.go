package model

import (
	"reflect"
	"strings"
	"testing"
)

// The login-provisioning upsert targets ON CONFLICT (email, external_auth_sub);
// Postgres only accepts that conflict target when one unique index covers
// exactly those columns, so both fields must share the composite index tag.
func TestUserCarriesCompositeUpsertIndex(t *testing.T) {
	const indexName = "uniqueIndex:uq_users_external_auth_sub_email"

	userType := reflect.TypeOf(User{})
	for _, fieldName := range []string{"Email", "ExternalAuthSub"} {
		field, ok := userType.FieldByName(fieldName)
		if !ok {
			t.Fatalf("Expected field %s on User", fieldName)
		}
		if tag := field.Tag.Get("gorm"); !strings.Contains(tag, indexName) {
			t.Errorf("Expected %s gorm tag to contain %q, got %q", fieldName, indexName, tag)
		}
	}
}
