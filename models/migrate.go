package models

// All -> daftar model untuk AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Cafe{},
		&Admin{},
		&Item{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&RepeatOrderChain{},
		&RepeatOrderEntry{},
		&Alert{},
		&Subscription{},
	}
}
