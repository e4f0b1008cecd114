package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkolesov/refind/internal/client/models"
)

func owner(id int64) *models.User {
	return &models.User{ID: id}
}

func TestReconcile_ReturnedWithoutConfirmation_IsPending(t *testing.T) {
	found := []models.ReportItem{
		{ID: 5, Kind: models.KindFound, PostedBy: owner(1), Status: models.StatusReturned},
	}

	out := Reconcile(1, nil, found, nil)

	require.Len(t, out, 1)
	require.Equal(t, int64(5), out[0].ID)
	require.Equal(t, models.DisplayPending, out[0].DisplayStatus)
}

func TestReconcile_ReturnedWithOwnerConfirmation_IsReturned(t *testing.T) {
	found := []models.ReportItem{
		{ID: 5, Kind: models.KindFound, PostedBy: owner(1), Status: models.StatusReturned},
	}
	matches := []models.Match{
		{
			LostItem:  &models.ReportItem{ID: 9, Kind: models.KindLost, Status: models.StatusInactive},
			FoundItem: &models.ReportItem{ID: 5, Kind: models.KindFound, Status: models.StatusReturned},
		},
	}

	out := Reconcile(1, nil, found, matches)

	require.Len(t, out, 1)
	require.Equal(t, models.DisplayStatus(models.StatusReturned), out[0].DisplayStatus)
}

func TestReconcile_OtherStatusesPassThrough(t *testing.T) {
	lost := []models.ReportItem{
		{ID: 1, Kind: models.KindLost, PostedBy: owner(1), Status: models.StatusActive},
		{ID: 2, Kind: models.KindLost, PostedBy: owner(1), Status: models.StatusInactive},
	}
	found := []models.ReportItem{
		{ID: 3, Kind: models.KindFound, PostedBy: owner(1), Status: models.StatusActive},
		{ID: 4, Kind: models.KindFound, PostedBy: owner(1), Status: models.StatusFound},
	}

	out := Reconcile(1, lost, found, nil)

	require.Len(t, out, 4)
	for _, it := range out {
		require.Equal(t, it.Status.Display(), it.DisplayStatus)
	}
}

func TestReconcile_FiltersByOwner_PreservesOrder(t *testing.T) {
	lost := []models.ReportItem{
		{ID: 1, Kind: models.KindLost, PostedBy: owner(1), Status: models.StatusActive},
		{ID: 2, Kind: models.KindLost, PostedBy: owner(2), Status: models.StatusActive},
		{ID: 3, Kind: models.KindLost, PostedBy: owner(1), Status: models.StatusActive},
		{ID: 4, Kind: models.KindLost, Status: models.StatusActive}, // no poster
	}

	out := Reconcile(1, lost, nil, nil)

	require.Len(t, out, 2)
	require.Equal(t, int64(1), out[0].ID)
	require.Equal(t, int64(3), out[1].ID)
}

func TestReconcile_LostBeforeFound_TotalCount(t *testing.T) {
	lost := []models.ReportItem{
		{ID: 1, Kind: models.KindLost, PostedBy: owner(1), Status: models.StatusActive},
	}
	found := []models.ReportItem{
		{ID: 2, Kind: models.KindFound, PostedBy: owner(1), Status: models.StatusActive},
	}

	out := Reconcile(1, lost, found, nil)

	require.Len(t, out, 2)
	require.Equal(t, models.KindLost, out[0].Kind)
	require.Equal(t, models.KindFound, out[1].Kind)
}

func TestReconcile_MatchesWithUnknownIDs_AreIgnored(t *testing.T) {
	found := []models.ReportItem{
		{ID: 5, Kind: models.KindFound, PostedBy: owner(1), Status: models.StatusReturned},
	}
	matches := []models.Match{
		// Confirms a found item nobody fetched.
		{
			LostItem:  &models.ReportItem{ID: 100, Status: models.StatusInactive},
			FoundItem: &models.ReportItem{ID: 101, Status: models.StatusReturned},
		},
		// Half-empty match rows never index.
		{LostItem: &models.ReportItem{ID: 102, Status: models.StatusInactive}},
		{},
	}

	out := Reconcile(1, nil, found, matches)

	require.Len(t, out, 1)
	require.Equal(t, models.DisplayPending, out[0].DisplayStatus)
}

func TestReconcile_EmptyInputs_EmptyResult(t *testing.T) {
	out := Reconcile(1, nil, nil, nil)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestReconcile_Pure_SameInputsSameOutput(t *testing.T) {
	lost := []models.ReportItem{
		{ID: 1, Kind: models.KindLost, PostedBy: owner(1), Status: models.StatusActive},
	}
	found := []models.ReportItem{
		{ID: 5, Kind: models.KindFound, PostedBy: owner(1), Status: models.StatusReturned},
	}
	matches := []models.Match{
		{
			LostItem:  &models.ReportItem{ID: 1, Status: models.StatusInactive},
			FoundItem: &models.ReportItem{ID: 5, Status: models.StatusReturned},
		},
	}

	first := Reconcile(1, lost, found, matches)
	second := Reconcile(1, lost, found, matches)

	require.Equal(t, first, second)

	// Inputs are not mutated either.
	require.Equal(t, models.StatusReturned, found[0].Status)
}

func TestBuildMatchIndex(t *testing.T) {
	matches := []models.Match{
		{
			LostItem:  &models.ReportItem{ID: 9, Status: models.StatusInactive},
			FoundItem: &models.ReportItem{ID: 5, Status: models.StatusReturned},
		},
		{
			LostItem:  &models.ReportItem{ID: 9, Status: models.StatusInactive},
			FoundItem: &models.ReportItem{ID: 6, Status: models.StatusReturned},
		},
		{
			LostItem:  &models.ReportItem{ID: 10, Status: models.StatusActive},
			FoundItem: &models.ReportItem{ID: 7, Status: models.StatusActive},
		},
	}

	idx := BuildMatchIndex(matches)

	require.Contains(t, idx.ConfirmedFoundIDs, int64(5))
	require.Contains(t, idx.ConfirmedFoundIDs, int64(6))
	require.NotContains(t, idx.ConfirmedFoundIDs, int64(7))

	require.Contains(t, idx.ReturnedLostIDs, int64(9))
	require.NotContains(t, idx.ReturnedLostIDs, int64(10))

	require.Equal(t, []int64{5, 6}, idx.ReturnedFoundByLost[9])
}
