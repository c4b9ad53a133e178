package domain

// Well-known settings keys.
const (
	SettingStoreName         = "store_name"
	SettingStoreAddress      = "store_address"
	SettingStorePhone        = "store_phone"
	SettingStoreEmail        = "store_email"
	SettingStorePostalCode   = "store_postal_code"
	SettingStoreRegistration = "store_registration_number"
	SettingDefaultTaxRate    = "default_tax_rate"
	SettingCurrencySymbol    = "currency_symbol"
)

type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}
