package tui

import (
	"context"
	"testing"

	"github.com/sh0bas/osrs-advisor/internal/model"
	"github.com/sh0bas/osrs-advisor/internal/wom"
)

type fakeProfileSource struct {
	profile model.PlayerProfile
	err     error
}

func (f *fakeProfileSource) Assemble(_ context.Context, _ string) (model.PlayerProfile, error) {
	return f.profile, f.err
}

type fakeRecommender struct {
	text  string
	calls int
}

func (f *fakeRecommender) Recommend(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.text, nil
}

func testProfile() model.PlayerProfile {
	return model.PlayerProfile{
		DisplayName:     "Zezima",
		TotalExperience: 4600000000,
		Skills: []model.SkillRecord{
			{Name: "Attack", Level: 99, Experience: 200000000},
			{Name: "Overall", Level: 2277, Experience: 4600000000},
		},
		RecentActivities: []string{"Gained 150k Slayer XP"},
	}
}

func TestLookupErrorClearsProfile(t *testing.T) {
	m := NewModel(&fakeProfileSource{}, &fakeRecommender{}, nil, "key")
	p := testProfile()
	m.profile = &p
	m.recommendation = "old suggestion"
	m.lookupSeq = 1
	m.lookingUp = true

	lookupErr := &model.LookupError{
		Category: model.CategoryNotFound,
		Message:  wom.MsgNotFound,
	}
	m.Update(lookupDoneMsg{seq: 1, err: lookupErr})

	if m.profile != nil {
		t.Fatalf("expected profile cleared")
	}
	if m.recommendation != "" {
		t.Fatalf("expected recommendation cleared")
	}
	if m.errMsg != wom.MsgNotFound {
		t.Fatalf("unexpected error message: %q", m.errMsg)
	}
	if m.lookingUp {
		t.Fatalf("expected lookup to be finished")
	}
}

func TestStaleLookupDiscarded(t *testing.T) {
	m := NewModel(&fakeProfileSource{}, &fakeRecommender{}, nil, "key")
	m.lookupSeq = 2
	m.lookingUp = true

	m.Update(lookupDoneMsg{seq: 1, profile: testProfile()})

	if m.profile != nil {
		t.Fatalf("stale result must be discarded")
	}
	if !m.lookingUp {
		t.Fatalf("newer lookup still outstanding")
	}
}

func TestStaleRecommendationDiscarded(t *testing.T) {
	m := NewModel(&fakeProfileSource{}, &fakeRecommender{}, nil, "key")
	m.recommendSeq = 3
	m.recommending = true

	m.Update(recommendDoneMsg{seq: 2, text: "stale"})

	if m.recommendation != "" {
		t.Fatalf("stale recommendation must be discarded")
	}

	m.Update(recommendDoneMsg{seq: 3, text: "fresh"})
	if m.recommendation != "fresh" {
		t.Fatalf("unexpected recommendation: %q", m.recommendation)
	}
	if m.recommending {
		t.Fatalf("expected recommendation to be finished")
	}
}

func TestRecommendWithoutCredentialPrompts(t *testing.T) {
	recommender := &fakeRecommender{text: "suggestion"}
	m := NewModel(&fakeProfileSource{}, recommender, nil, "")
	p := testProfile()
	m.profile = &p

	m.startRecommend()

	if !m.keyModal {
		t.Fatalf("expected API key prompt")
	}
	if m.recommending {
		t.Fatalf("expected no recommendation in flight")
	}
	if recommender.calls != 0 {
		t.Fatalf("expected no network call, got %d", recommender.calls)
	}
}

func TestRecommendWithCredentialStarts(t *testing.T) {
	m := NewModel(&fakeProfileSource{}, &fakeRecommender{text: "suggestion"}, nil, "key")
	p := testProfile()
	m.profile = &p

	_, cmd := m.startRecommend()

	if m.keyModal {
		t.Fatalf("unexpected API key prompt")
	}
	if !m.recommending {
		t.Fatalf("expected recommendation in flight")
	}
	if cmd == nil {
		t.Fatalf("expected a command")
	}
}

func TestSecondLookupIgnoredWhileInFlight(t *testing.T) {
	m := NewModel(&fakeProfileSource{}, &fakeRecommender{}, nil, "key")
	m.usernameInput.SetValue("Zezima")

	m.startLookup()
	if m.lookupSeq != 1 || !m.lookingUp {
		t.Fatalf("expected first lookup to start")
	}
	m.startLookup()
	if m.lookupSeq != 1 {
		t.Fatalf("second submit must be ignored while in flight")
	}
}
