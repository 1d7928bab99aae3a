package models

import "time"

type SubscriptionPlan string

const (
	PlanFree     SubscriptionPlan = "FREE"
	PlanCreator  SubscriptionPlan = "CREATOR"
	PlanBusiness SubscriptionPlan = "BUSINESS"
)

func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanCreator, PlanBusiness:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionTrialing SubscriptionStatus = "TRIALING"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionTrialing, SubscriptionPastDue, SubscriptionCanceled:
		return true
	}
	return false
}

// SubscriptionModel mirrors the external billing provider's state for a user.
// Status changes arrive via provider webhooks; this service only reads it.
type SubscriptionModel struct {
	Base
	UserID                 string             `json:"user_id" gorm:"uniqueIndex;not null"`
	Plan                   SubscriptionPlan   `json:"plan"    gorm:"type:varchar(16);default:'FREE'"`
	Status                 SubscriptionStatus `json:"status"  gorm:"type:varchar(16);default:'ACTIVE'"`
	CurrentPeriodStart     *time.Time         `json:"current_period_start"`
	CurrentPeriodEnd       *time.Time         `json:"current_period_end"`
	CancelAtPeriodEnd      bool               `json:"cancel_at_period_end"`
	ProviderCustomerID     string             `json:"-"       gorm:"index"`
	ProviderSubscriptionID string             `json:"-"       gorm:"index"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }
