package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var submitTime = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func TestNewApprovalItem_SecondStageThreshold(t *testing.T) {
	t.Run("below threshold has no second stage", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(199999), submitTime)
		assert.Nil(t, item.Second)
		assert.Equal(t, StatusPendingFirst, item.Status)
		assert.Equal(t, 1, item.Pass)
	})

	t.Run("at threshold gets a pending second stage", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(200000), submitTime)
		require.NotNil(t, item.Second)
		assert.Equal(t, StagePending, item.Second.State)
	})
}

func TestApplyFirst(t *testing.T) {
	t.Run("approve below threshold finishes the item", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(50000), submitTime)
		require.NoError(t, item.ApplyFirst(ActionApprove, "mgr-1", "", submitTime.Add(time.Minute)))
		assert.Equal(t, StatusApproved, item.Status)
		assert.Equal(t, StageApproved, item.First.State)
		assert.Equal(t, "mgr-1", item.First.ActorID)
	})

	t.Run("approve at threshold moves to pending second", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(250000), submitTime)
		require.NoError(t, item.ApplyFirst(ActionApprove, "mgr-1", "", submitTime.Add(time.Minute)))
		assert.Equal(t, StatusPendingSecond, item.Status)
	})

	t.Run("sendback requires a reason", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(50000), submitTime)
		assert.ErrorIs(t, item.ApplyFirst(ActionSendBack, "mgr-1", "", submitTime), ErrReasonRequired)
		assert.Equal(t, StatusPendingFirst, item.Status)
	})

	t.Run("sendback records the reason", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(50000), submitTime)
		require.NoError(t, item.ApplyFirst(ActionSendBack, "mgr-1", "guarantor NIC mismatch", submitTime))
		assert.Equal(t, StatusSentBack, item.Status)
		assert.Equal(t, "guarantor NIC mismatch", item.RejectionReason())
	})

	t.Run("a decided stage is terminal", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(50000), submitTime)
		require.NoError(t, item.ApplyFirst(ActionApprove, "mgr-1", "", submitTime))
		assert.ErrorIs(t, item.ApplyFirst(ActionApprove, "mgr-2", "", submitTime), ErrStageDecided)
		assert.ErrorIs(t, item.ApplyFirst(ActionSendBack, "mgr-2", "late", submitTime), ErrStageDecided)
	})
}

func TestApplySecond(t *testing.T) {
	t.Run("not applicable below threshold", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(50000), submitTime)
		assert.ErrorIs(t, item.ApplySecond(ActionApprove, "adm-1", "", submitTime), ErrStageNotApplicable)
	})

	t.Run("blocked while the first stage is pending", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(250000), submitTime)
		assert.ErrorIs(t, item.ApplySecond(ActionApprove, "adm-1", "", submitTime), ErrFirstStagePending)
	})

	t.Run("approve completes the item", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(250000), submitTime)
		require.NoError(t, item.ApplyFirst(ActionApprove, "mgr-1", "", submitTime))
		require.NoError(t, item.ApplySecond(ActionApprove, "adm-1", "", submitTime.Add(time.Minute)))
		assert.Equal(t, StatusApproved, item.Status)
	})

	t.Run("sendback from the second stage", func(t *testing.T) {
		item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(250000), submitTime)
		require.NoError(t, item.ApplyFirst(ActionApprove, "mgr-1", "", submitTime))
		require.NoError(t, item.ApplySecond(ActionSendBack, "adm-1", "collateral unclear", submitTime))
		assert.Equal(t, StatusSentBack, item.Status)
		assert.Equal(t, "collateral unclear", item.RejectionReason())
	})
}

func TestResetForResubmission(t *testing.T) {
	item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(250000), submitTime)
	require.NoError(t, item.ApplyFirst(ActionSendBack, "mgr-1", "fix the witness", submitTime))

	resubmit := submitTime.Add(24 * time.Hour)
	item.ResetForResubmission(decimal.NewFromInt(150000), resubmit)

	assert.Equal(t, StatusPendingFirst, item.Status)
	assert.Equal(t, StagePending, item.First.State)
	assert.Nil(t, item.Second, "the lower resubmitted amount drops the second stage")
	assert.Equal(t, 2, item.Pass)
	assert.Equal(t, resubmit, item.SubmittedAt)
	assert.Empty(t, item.RejectionReason())
}

func TestOverdue(t *testing.T) {
	item := NewApprovalItem("ap-1", "loan-1", decimal.NewFromInt(250000), submitTime)

	assert.False(t, item.Overdue(submitTime.Add(30*time.Minute)))
	assert.True(t, item.Overdue(submitTime.Add(2*time.Hour)))

	decidedAt := submitTime.Add(10 * time.Minute)
	require.NoError(t, item.ApplyFirst(ActionApprove, "mgr-1", "", decidedAt))
	assert.False(t, item.Overdue(decidedAt.Add(59*time.Minute)))
	assert.True(t, item.Overdue(decidedAt.Add(61*time.Minute)))

	require.NoError(t, item.ApplySecond(ActionApprove, "adm-1", "", decidedAt.Add(time.Hour)))
	assert.False(t, item.Overdue(decidedAt.Add(48*time.Hour)), "decided items are never overdue")
}
