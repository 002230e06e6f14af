package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/shadow-poll/models"
	"github.com/danielhkuo/shadow-poll/registry"
	"github.com/danielhkuo/shadow-poll/testutil"
)

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVoteHandler(db, registry.New())
	pollID, _ := testutil.CreateTestPoll(t, db, "Cats or dogs?", "Cats", "Dogs")

	tests := []struct {
		name           string
		pollID         string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.Poll)
	}{
		{
			name:   "valid vote",
			pollID: pollID,
			requestBody: models.VoteRequest{
				Option:          "A",
				VoterIdentifier: uuid.NewString(),
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.Poll) {
				if resp.OptionAVotes != 1 {
					t.Errorf("Expected optionA_votes=1, got %d", resp.OptionAVotes)
				}
				if resp.OptionBVotes != 0 {
					t.Errorf("Expected optionB_votes=0, got %d", resp.OptionBVotes)
				}
				if got := testutil.CountVotes(t, db, pollID); got != 1 {
					t.Errorf("Expected 1 ledger row, got %d", got)
				}
			},
		},
		{
			name:   "unknown option letter",
			pollID: pollID,
			requestBody: models.VoteRequest{
				Option:          "E",
				VoterIdentifier: uuid.NewString(),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unpopulated option slot",
			pollID: pollID,
			requestBody: models.VoteRequest{
				Option:          "C",
				VoterIdentifier: uuid.NewString(),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "missing voter identifier",
			pollID: pollID,
			requestBody: models.VoteRequest{
				Option: "A",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "voter identifier not a uuid",
			pollID: pollID,
			requestBody: models.VoteRequest{
				Option:          "A",
				VoterIdentifier: "not-a-uuid",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown poll",
			pollID: "nonexistent-poll-id",
			requestBody: models.VoteRequest{
				Option:          "A",
				VoterIdentifier: uuid.NewString(),
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/polls/"+tt.pollID+"/vote", tt.requestBody, nil)
			req.SetPathValue("id", tt.pollID)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK && tt.checkResponse != nil {
				var resp models.Poll
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestCastVoteRejectedVotesHaveNoSideEffects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVoteHandler(db, registry.New())
	pollID, _ := testutil.CreateTestPoll(t, db, "Tea or coffee?", "Tea", "Coffee")

	rejected := []models.VoteRequest{
		{Option: "E", VoterIdentifier: uuid.NewString()},
		{Option: "A", VoterIdentifier: ""},
		{Option: "C", VoterIdentifier: uuid.NewString()},
	}

	for _, reqBody := range rejected {
		req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", reqBody, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		handler.CastVote(w, req)

		if w.Code == http.StatusOK {
			t.Fatalf("Expected rejection for %+v, got 200", reqBody)
		}
	}

	if got := testutil.CountVotes(t, db, pollID); got != 0 {
		t.Errorf("Rejected votes left %d ledger rows", got)
	}

	var votesA, votesB int
	err := db.QueryRow(`SELECT option_a_votes, option_b_votes FROM polls WHERE id = $1`, pollID).Scan(&votesA, &votesB)
	if err != nil {
		t.Fatalf("Failed to query counters: %v", err)
	}
	if votesA != 0 || votesB != 0 {
		t.Errorf("Rejected votes mutated counters: A=%d B=%d", votesA, votesB)
	}
}

func TestCastVoteFourOptionPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVoteHandler(db, registry.New())
	pollID, _ := testutil.CreateTestPoll(t, db, "Pick a season", "Spring", "Summer", "Autumn", "Winter")

	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{
		Option:          "D",
		VoterIdentifier: uuid.NewString(),
	}, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.Poll
	testutil.AssertJSON(t, w, &resp)
	if resp.OptionDVotes != 1 {
		t.Errorf("Expected optionD_votes=1, got %d", resp.OptionDVotes)
	}
}

// TestVoteScenario walks the canonical flow: v1 votes A, v1 tries again
// and is refused with counts unchanged, v2 votes B and a live subscriber
// sees exactly one snapshot with both counters.
func TestVoteScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	reg := registry.New()
	handler := NewVoteHandler(db, reg)
	pollID, _ := testutil.CreateTestPoll(t, db, "Cats or dogs?", "Cats", "Dogs")

	v1 := uuid.NewString()
	v2 := uuid.NewString()

	// v1 votes A
	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{Option: "A", VoterIdentifier: v1}, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.Poll
	testutil.AssertJSON(t, w, &resp)
	if resp.OptionAVotes != 1 || resp.OptionBVotes != 0 {
		t.Errorf("After v1 votes A: expected A=1 B=0, got A=%d B=%d", resp.OptionAVotes, resp.OptionBVotes)
	}

	// v1 votes again, this time B: refused, counts unchanged
	req = testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{Option: "B", VoterIdentifier: v1}, nil)
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()
	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
	var votesA, votesB int
	if err := db.QueryRow(`SELECT option_a_votes, option_b_votes FROM polls WHERE id = $1`, pollID).Scan(&votesA, &votesB); err != nil {
		t.Fatalf("Failed to query counters: %v", err)
	}
	if votesA != 1 || votesB != 0 {
		t.Errorf("Duplicate vote mutated counters: A=%d B=%d", votesA, votesB)
	}

	// Subscribe, then v2 votes B
	sub := reg.Subscribe(pollID)
	defer reg.Unsubscribe(sub)

	req = testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{Option: "B", VoterIdentifier: v2}, nil)
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()
	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	select {
	case snapshot := <-sub.Updates():
		if snapshot.OptionAVotes != 1 || snapshot.OptionBVotes != 1 {
			t.Errorf("Broadcast snapshot: expected A=1 B=1, got A=%d B=%d", snapshot.OptionAVotes, snapshot.OptionBVotes)
		}
	case <-time.After(time.Second):
		t.Fatal("Subscriber never received the vote broadcast")
	}

	// Exactly once
	select {
	case extra := <-sub.Updates():
		t.Errorf("Unexpected second broadcast: %+v", extra)
	default:
	}
}

func TestVoteAfterUnsubscribeDeliversNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	reg := registry.New()
	handler := NewVoteHandler(db, reg)
	pollID, _ := testutil.CreateTestPoll(t, db, "Tabs or spaces?", "Tabs", "Spaces")

	sub := reg.Subscribe(pollID)
	reg.Unsubscribe(sub)

	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{Option: "A", VoterIdentifier: uuid.NewString()}, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	if _, ok := <-sub.Updates(); ok {
		t.Error("Removed sink received a broadcast")
	}
}
