package services

import (
	"errors"

	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

// storeError -> record kosong jadi NotFound, sisanya Internal
func storeError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(entity)
	}
	return utils.Internal(err)
}
