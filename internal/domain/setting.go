package domain

import "time"

type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeInteger SettingType = "integer"
	SettingTypeFloat   SettingType = "float"
)

// Setting stores a typed configuration value as text; Type drives parsing on
// read.
type Setting struct {
	ID        int32       `json:"id"`
	Key       string      `json:"key"`
	Value     string      `json:"value"`
	Type      SettingType `json:"type"`
	CreatedOn time.Time   `json:"created_on"`
	UpdatedOn time.Time   `json:"updated_on"`
}

// Well-known setting keys.
const (
	SettingMaintenanceMode     = "SYSTEM_MAINTENANCE_MODE"
	SettingDefaultTimezone     = "SYSTEM_DEFAULT_TIMEZONE"
	SettingCurrencySymbol      = "FINANCE_CURRENCY_SYMBOL"
	SettingTaxRatePercent      = "FINANCE_TAX_RATE_PERCENT"
	SettingLateFeeHourly       = "LATE_RETURN_FEE_HOURLY"
	SettingMinBookingHours     = "BOOKING_MIN_PERIOD_HOURS"
	SettingRentalBufferHours   = "RENTAL_BUFFER_HOURS"
	SettingAdvanceNoticeHours  = "RENTAL_ADVANCE_NOTICE_HOURS"
	SettingEmailSenderAddress  = "EMAIL_SENDER_ADDRESS"
	SettingEmailAdminAlertAddr = "EMAIL_ADMIN_ALERT_ADDRESS"
)
