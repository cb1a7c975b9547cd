package dto

import (
	"fmt"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/store"
	"github.com/google/uuid"
)

// ParsePatchPayloads converts raw patch bodies into store patches. Each item
// is a flat object carrying "id" plus the fields to change; the raw-map shape
// is what preserves the distinction between an absent field (leave unchanged)
// and an explicit null (clear).
func ParsePatchPayloads(items []map[string]any) ([]store.Patch, error) {
	if len(items) == 0 {
		return nil, apperrors.Validation("patch request body must contain at least one item")
	}

	patches := make([]store.Patch, 0, len(items))
	for i, item := range items {
		rawID, ok := item["id"]
		if !ok {
			return nil, apperrors.Validation(fmt.Sprintf("patch item %d is missing the 'id' field", i))
		}
		idStr, ok := rawID.(string)
		if !ok {
			return nil, apperrors.Validation(fmt.Sprintf("patch item %d has a non-string 'id' field", i))
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("patch item %d has an invalid uuid %q", i, idStr))
		}

		changes := make(map[string]any, len(item)-1)
		for k, v := range item {
			if k == "id" {
				continue
			}
			changes[k] = v
		}
		patches = append(patches, store.Patch{ID: id, Changes: changes})
	}
	return patches, nil
}
