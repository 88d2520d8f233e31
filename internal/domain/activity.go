package domain

import "time"

// Activity log action codes.
const (
	ActionCreateRentalRequest   = "CREATE_RENTAL_REQUEST"
	ActionApproveRentalRequest  = "APPROVE_RENTAL_REQUEST"
	ActionRejectRentalRequest   = "REJECT_RENTAL_REQUEST"
	ActionUpdateRentalRequest   = "UPDATE_RENTAL_REQUEST"
	ActionDeleteRentalRequest   = "DELETE_RENTAL_REQUEST"
	ActionCreateWalkInRental    = "CREATE_WALK_IN_RENTAL"
	ActionCompleteRental        = "COMPLETE_RENTAL"
	ActionCreateCar             = "CREATE_CAR"
	ActionUpdateCar             = "UPDATE_CAR"
	ActionDeleteCar             = "DELETE_CAR"
	ActionDisableCar            = "DISABLE_CAR"
	ActionEnableCar             = "ENABLE_CAR"
	ActionSetCarStatus          = "SET_CAR_STATUS"
	ActionCreateCustomer        = "CREATE_CUSTOMER"
	ActionUpdateCustomer        = "UPDATE_CUSTOMER"
	ActionUpdateSetting         = "UPDATE_SETTING"
	ActionUserLogin             = "USER_LOGIN"
	ActionUserRegister          = "USER_REGISTER"
	ActionMarkRentalOverdue     = "MARK_RENTAL_OVERDUE"
)

// ActivityLog is an immutable audit record. Username and UserRoles are
// snapshots taken at write time so history survives later account changes.
type ActivityLog struct {
	ID          int32     `json:"id"`
	EventID     string    `json:"event_id"`
	UserID      *int32    `json:"user_id,omitempty"`
	Username    string    `json:"username,omitempty"`
	UserRoles   string    `json:"user_roles,omitempty"`
	UserType    UserType  `json:"user_type"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	TargetData  string    `json:"target_data,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}

// ActivityLogFilter narrows audit-trail listings.
type ActivityLogFilter struct {
	Action   string
	UserType UserType
	From     *time.Time
	To       *time.Time
	Page     int32
	PageSize int32
}
