package models

// All returns every model, in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&CompanyModel{},
		&PartnerModel{},
		&JournalModel{},
		&PaymentMethodLineModel{},
		&ExchangeRateModel{},
		&SalesOrderModel{},
		&PaymentModel{},
	}
}
