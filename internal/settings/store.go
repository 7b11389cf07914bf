// Package settings holds process-wide mutable configuration for the event
// center. Values live in memory only: every restart resets them to the
// defaults. A single store instance is shared by all requests, so access
// goes through a read-write mutex.
package settings

import "sync"

// EventCenterInfo describes the venue shown on the public landing page.
type EventCenterInfo struct {
	CenterName   string `json:"centerName"`
	ContactPhone string `json:"contactPhone"`
	EmailAddress string `json:"emailAddress"`
	Location     string `json:"location"`
}

// BookingSettings toggles booking-related behavior.
type BookingSettings struct {
	AllowOnlineBookings          bool `json:"allowOnlineBookings"`
	RequirePaymentBeforeApproval bool `json:"requirePaymentBeforeApproval"`
	SendEmailNotifications       bool `json:"sendEmailNotifications"`
}

// EventCenterInfoPatch carries a partial update; nil fields keep the
// current value.
type EventCenterInfoPatch struct {
	CenterName   *string `json:"centerName"`
	ContactPhone *string `json:"contactPhone"`
	EmailAddress *string `json:"emailAddress"`
	Location     *string `json:"location"`
}

// BookingSettingsPatch carries a partial update; nil fields keep the
// current value.
type BookingSettingsPatch struct {
	AllowOnlineBookings          *bool `json:"allowOnlineBookings"`
	RequirePaymentBeforeApproval *bool `json:"requirePaymentBeforeApproval"`
	SendEmailNotifications       *bool `json:"sendEmailNotifications"`
}

// Store is the mutex-guarded settings singleton.
type Store struct {
	mu      sync.RWMutex
	info    EventCenterInfo
	booking BookingSettings
}

// NewStore returns a store initialized with the default settings.
func NewStore() *Store {
	return &Store{
		info: EventCenterInfo{
			CenterName:   "GreatTime Event Center",
			ContactPhone: "123-456-7890",
			EmailAddress: "info@greattime.com",
			Location:     "123 Event Street, City, Country",
		},
		booking: BookingSettings{
			AllowOnlineBookings:          true,
			RequirePaymentBeforeApproval: true,
			SendEmailNotifications:       true,
		},
	}
}

// Get returns the current settings.
func (s *Store) Get() (EventCenterInfo, BookingSettings) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, s.booking
}

// UpdateEventCenterInfo merges the patch into the current info and returns
// the result.
func (s *Store) UpdateEventCenterInfo(p EventCenterInfoPatch) EventCenterInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CenterName != nil {
		s.info.CenterName = *p.CenterName
	}
	if p.ContactPhone != nil {
		s.info.ContactPhone = *p.ContactPhone
	}
	if p.EmailAddress != nil {
		s.info.EmailAddress = *p.EmailAddress
	}
	if p.Location != nil {
		s.info.Location = *p.Location
	}
	return s.info
}

// UpdateBookingSettings merges the patch into the current booking settings
// and returns the result.
func (s *Store) UpdateBookingSettings(p BookingSettingsPatch) BookingSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.AllowOnlineBookings != nil {
		s.booking.AllowOnlineBookings = *p.AllowOnlineBookings
	}
	if p.RequirePaymentBeforeApproval != nil {
		s.booking.RequirePaymentBeforeApproval = *p.RequirePaymentBeforeApproval
	}
	if p.SendEmailNotifications != nil {
		s.booking.SendEmailNotifications = *p.SendEmailNotifications
	}
	return s.booking
}

// OnlineBookingsAllowed reports whether the public booking endpoint should
// accept new requests.
func (s *Store) OnlineBookingsAllowed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.booking.AllowOnlineBookings
}

// NotificationsEnabled reports whether booking events should be published
// for the notification consumer.
func (s *Store) NotificationsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.booking.SendEmailNotifications
}
