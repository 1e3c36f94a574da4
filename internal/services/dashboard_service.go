package services

import (
	"context"

	"khata/internal/ledger"
)

type dashboardService struct {
	transactions TransactionServicer
	settings     SettingsServicer
	receivers    ReceiverServicer
	participants []string
}

// NewDashboardService creates a new DashboardServicer over the other services.
func NewDashboardService(transactions TransactionServicer, settings SettingsServicer, receivers ReceiverServicer, participants []string) DashboardServicer {
	return &dashboardService{
		transactions: transactions,
		settings:     settings,
		receivers:    receivers,
		participants: participants,
	}
}

// GetDashboard summarizes every visible transaction at the current rate.
func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	receivers, err := s.receivers.ListReceivers(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Settings:     *settings,
		Summary:      ledger.Summarize(list, settings.KWDToPKRRate, s.participants),
		LastEditor:   settings.UpdatedBy,
		Receivers:    len(receivers),
		Participants: s.participants,
	}
	if !settings.UpdatedAt.IsZero() {
		at := settings.UpdatedAt
		d.LastEditAt = &at
	}
	return d, nil
}
