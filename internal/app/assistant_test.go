package app_test

import (
	"context"
	"strings"
	"testing"

	"asili_experiences/internal/app"
	"asili_experiences/internal/booking"
	"asili_experiences/internal/domain"
)

type fakeLLM struct{ text string }

func (l *fakeLLM) Reply(ctx context.Context, prompt string) (string, error) { return l.text, nil }

func newAssistant(repo *fakeRepo, llm app.LLM) *app.Assistant {
	return app.NewAssistant(repo, booking.NewFormatter("en", "KES"), llm)
}

func TestAssistant_Greeting(t *testing.T) {
	a := newAssistant(&fakeRepo{}, nil)
	r, err := a.Ask(context.Background(), "Jambo!")
	if err != nil || r.Intent != "greeting" {
		t.Fatalf("got %+v err=%v", r, err)
	}
}

func TestAssistant_PriceWithExperience(t *testing.T) {
	a := newAssistant(&fakeRepo{ev: safariView()}, nil)
	r, err := a.Ask(context.Background(), "how much does experience #12 cost?")
	if err != nil || r.Intent != "price" {
		t.Fatalf("got %+v err=%v", r, err)
	}
	if !strings.Contains(r.Text, "Night Safari") {
		t.Fatalf("reply should name the experience: %q", r.Text)
	}
	if !strings.Contains(r.Text, "Children pay half") {
		t.Fatalf("reply should mention the child rule: %q", r.Text)
	}
}

func TestAssistant_PriceWithoutID(t *testing.T) {
	a := newAssistant(&fakeRepo{evErr: domain.ErrNotFound}, nil)
	r, _ := a.Ask(context.Background(), "what is the price?")
	if r.Intent != "price" || !strings.Contains(r.Text, "which experience") {
		t.Fatalf("expected clarifying question, got %+v", r)
	}
}

func TestAssistant_Capacity(t *testing.T) {
	a := newAssistant(&fakeRepo{ev: safariView()}, nil)
	r, _ := a.Ask(context.Background(), "how many people can join #12?")
	if r.Intent != "capacity" || !strings.Contains(r.Text, "8") {
		t.Fatalf("got %+v", r)
	}
}

func TestAssistant_Split(t *testing.T) {
	a := newAssistant(&fakeRepo{}, nil)
	r, _ := a.Ask(context.Background(), "what revenue share do partners get?")
	if r.Intent != "split" || !strings.Contains(r.Text, "90%") {
		t.Fatalf("got %+v", r)
	}
}

func TestAssistant_Browse(t *testing.T) {
	repo := &fakeRepo{list: domain.ExperiencesPage{Items: []domain.ExperienceView{safariView()}}}
	a := newAssistant(repo, nil)
	r, _ := a.Ask(context.Background(), "show me some experiences")
	if r.Intent != "browse" || !strings.Contains(r.Text, "#12") {
		t.Fatalf("got %+v", r)
	}
}

func TestAssistant_FallbackPrefersLLM(t *testing.T) {
	a := newAssistant(&fakeRepo{}, &fakeLLM{text: "delegated"})
	r, _ := a.Ask(context.Background(), "zzz unclassifiable gibberish")
	if r.Intent != "llm" || r.Text != "delegated" {
		t.Fatalf("got %+v", r)
	}

	plain := newAssistant(&fakeRepo{}, nil)
	r, _ = plain.Ask(context.Background(), "zzz unclassifiable gibberish")
	if r.Intent != "fallback" {
		t.Fatalf("got %+v", r)
	}
}
