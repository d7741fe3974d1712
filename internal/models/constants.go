package models

// Уровни владения навыком.
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// Уровни срочности изучения.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// MatchStatus статусы запроса на обмен навыками.
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusDeclined = "declined"
	// MatchStatusExpired есть в схеме, но ни одна операция его не выставляет.
	MatchStatusExpired = "expired"
)

// Типы уведомлений.
const (
	NotificationConnectionRequest  = "connection_request"
	NotificationConnectionAccepted = "connection_accepted"
	NotificationConnectionDeclined = "connection_declined"
	NotificationMessage            = "message"
	NotificationSystem             = "system"
)

// ValidProficiencyLevels список валидных уровней владения.
var ValidProficiencyLevels = map[string]struct{}{
	ProficiencyBeginner:     {},
	ProficiencyIntermediate: {},
	ProficiencyAdvanced:     {},
	ProficiencyExpert:       {},
}

// ValidUrgencyLevels список валидных уровней срочности.
var ValidUrgencyLevels = map[string]struct{}{
	UrgencyLow:    {},
	UrgencyMedium: {},
	UrgencyHigh:   {},
}

// ValidMatchStatuses список валидных статусов обмена.
var ValidMatchStatuses = map[string]struct{}{
	MatchStatusPending:  {},
	MatchStatusAccepted: {},
	MatchStatusDeclined: {},
	MatchStatusExpired:  {},
}
