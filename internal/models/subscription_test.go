package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDummySubscription_ToSubscription(t *testing.T) {
	inactive := false

	tests := []struct {
		name    string
		dummy   DummySubscription
		userID  int64
		want    Subscription
		wantErr bool
	}{
		{
			name: "бессрочная подписка, active по умолчанию",
			dummy: DummySubscription{
				StartDate:  "2026-01-01 00:00:00",
				ProviderID: 5,
			},
			userID: 3,
			want: Subscription{
				StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Active:     true,
				ProviderID: 5,
				UserID:     3,
			},
		},
		{
			name: "подписка с датой окончания и явным active",
			dummy: DummySubscription{
				StartDate:  "2026-01-01 00:00:00",
				EndDate:    "2026-12-31 23:59:59",
				Active:     &inactive,
				ProviderID: 5,
			},
			userID: 3,
			want: Subscription{
				StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Active:     false,
				ProviderID: 5,
				UserID:     3,
			},
		},
		{
			name: "неверный формат даты начала",
			dummy: DummySubscription{
				StartDate:  "01-01-2026",
				ProviderID: 5,
			},
			wantErr: true,
		},
		{
			name: "неверный формат даты окончания",
			dummy: DummySubscription{
				StartDate:  "2026-01-01 00:00:00",
				EndDate:    "tomorrow",
				ProviderID: 5,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dummy.ToSubscription(tt.userID)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.StartDate, got.StartDate)
			assert.Equal(t, tt.want.Active, got.Active)
			assert.Equal(t, tt.want.ProviderID, got.ProviderID)
			assert.Equal(t, tt.want.UserID, got.UserID)
			if tt.dummy.EndDate == "" {
				assert.Nil(t, got.EndDate)
			} else {
				require.NotNil(t, got.EndDate)
				assert.Equal(t, tt.dummy.EndDate, got.EndDate.Format(DateTimeLayout))
			}
		})
	}
}

func TestNewUserView(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	end := now.AddDate(1, 0, 0)
	user := &User{
		ID:        3,
		Username:  "john",
		Email:     "john@example.com",
		FullName:  "John Doe",
		CreatedAt: now,
		UpdatedAt: now,
	}

	view := NewUserView(user, []*UserSubscription{
		{
			Subscription: Subscription{ID: 10, StartDate: now, EndDate: &end, Active: true, ProviderID: 5, UserID: 3},
			Provider:     Provider{ID: 5, Name: "Netflix", Price: 599},
		},
	})

	assert.Equal(t, "2026-08-30 12:00:00", view.CreatedAt)
	require.Len(t, view.Subscriptions, 1)
	assert.Equal(t, "2027-08-30 12:00:00", view.Subscriptions[0].EndDate)
	assert.Equal(t, "Netflix", view.Subscriptions[0].Provider.Name)
}

func TestNewUserView_EmptySubscriptions(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	user := &User{ID: 3, Username: "john", Email: "john@example.com", CreatedAt: now, UpdatedAt: now}

	view := NewUserView(user, nil)

	assert.NotNil(t, view.Subscriptions)
	assert.Empty(t, view.Subscriptions)
}
