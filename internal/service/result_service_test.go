package service

import (
	"context"
	"errors"
	"testing"

	"manabiya-quiz/internal/grading"
)

func TestGetResultsOrderedNewestFirst(t *testing.T) {
	course, ref := mcqCourse(true, true, false)
	courses := newFakeCourses(course)
	subs := &fakeSubmissions{}
	subSvc := newSubmissionService(courses, subs)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := subSvc.SubmitQuiz(ctx, ref, student, SubmitRequest{
			Answers: []grading.SelectedAnswer{{QuestionIndex: 0, SelectedOptionIndex: 0}},
		}); err != nil {
			t.Fatalf("seed submission %d failed: %v", i, err)
		}
	}

	svc := NewResultService(courses, subs)
	views, err := svc.GetResults(ctx, ref, student, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(views))
	}
	for i, view := range views {
		want := 3 - i
		if view.Submission.AttemptNumber != want {
			t.Errorf("position %d: expected attempt %d, got %d", i, want, view.Submission.AttemptNumber)
		}
	}
}

func TestGetResultsNoSubmissions(t *testing.T) {
	course, ref := mcqCourse(true, true, false)
	svc := NewResultService(newFakeCourses(course), &fakeSubmissions{})

	_, err := svc.GetResults(context.Background(), ref, student, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetResultsVisibilityPolicy(t *testing.T) {
	t.Run("withheld", func(t *testing.T) {
		course, ref := mcqCourse(true, true, false)
		courses := newFakeCourses(course)
		subs := &fakeSubmissions{}
		subSvc := newSubmissionService(courses, subs)
		ctx := context.Background()
		if _, err := subSvc.SubmitQuiz(ctx, ref, student, SubmitRequest{
			Answers: []grading.SelectedAnswer{{QuestionIndex: 0, SelectedOptionIndex: 0}},
		}); err != nil {
			t.Fatalf("seed submission failed: %v", err)
		}

		views, err := NewResultService(courses, subs).GetResults(ctx, ref, student, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if views[0].ShowAnswers || views[0].Questions != nil {
			t.Error("answer key must be withheld")
		}
		if views[0].Submission.MCQAnswers != nil {
			t.Error("per-question results must be stripped")
		}
		if views[0].Submission.Percentage != 50 {
			t.Errorf("score summary must remain, got %d%%", views[0].Submission.Percentage)
		}
	})

	t.Run("shown", func(t *testing.T) {
		course, ref := mcqCourse(true, true, true)
		courses := newFakeCourses(course)
		subs := &fakeSubmissions{}
		subSvc := newSubmissionService(courses, subs)
		ctx := context.Background()
		if _, err := subSvc.SubmitQuiz(ctx, ref, student, SubmitRequest{
			Answers: []grading.SelectedAnswer{{QuestionIndex: 0, SelectedOptionIndex: 0}},
		}); err != nil {
			t.Fatalf("seed submission failed: %v", err)
		}

		views, err := NewResultService(courses, subs).GetResults(ctx, ref, student, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !views[0].ShowAnswers || len(views[0].Questions) != 2 {
			t.Errorf("expected full question set, got show=%v len=%d", views[0].ShowAnswers, len(views[0].Questions))
		}
	})
}

func TestGetResultsOpenEndedIncludesGrade(t *testing.T) {
	course, ref := openEndedCourse(100, 70)
	courses := newFakeCourses(course)
	subs := &fakeSubmissions{}
	seeded := submitOpenEnded(t, courses, subs, ref)
	ctx := context.Background()

	gradeSvc := newGradingService(courses, subs)
	if _, err := gradeSvc.GradeSubmission(ctx, seeded.ID.Hex(), instructor, 80, "上手です。"); err != nil {
		t.Fatalf("grading failed: %v", err)
	}

	views, err := NewResultService(courses, subs).GetResults(ctx, ref, student, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view := views[0]
	if view.OpenEndedQuestion == nil {
		t.Fatal("open-ended result must include the question")
	}
	answer := view.Submission.OpenEnded
	if answer == nil || !answer.Graded() || *answer.GradedScore != 80 || answer.Feedback != "上手です。" {
		t.Errorf("expected grade and feedback in result view, got %+v", answer)
	}
	if view.Submission.Percentage != 80 || !view.Submission.Passed {
		t.Errorf("expected 80%%/passed, got %d%%/%v", view.Submission.Percentage, view.Submission.Passed)
	}
}

func TestGetResultsFilterBySubmissionID(t *testing.T) {
	course, ref := mcqCourse(true, true, false)
	courses := newFakeCourses(course)
	subs := &fakeSubmissions{}
	subSvc := newSubmissionService(courses, subs)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 2; i++ {
		result, err := subSvc.SubmitQuiz(ctx, ref, student, SubmitRequest{
			Answers: []grading.SelectedAnswer{{QuestionIndex: 0, SelectedOptionIndex: 0}},
		})
		if err != nil {
			t.Fatalf("seed submission %d failed: %v", i, err)
		}
		ids = append(ids, result.Submission.ID.Hex())
	}

	svc := NewResultService(courses, subs)
	views, err := svc.GetResults(ctx, ref, student, ids[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].Submission.ID.Hex() != ids[0] {
		t.Errorf("expected only submission %s, got %d views", ids[0], len(views))
	}

	if _, err := svc.GetResults(ctx, ref, student, "ffffffffffffffffffffffff"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown submission id, got %v", err)
	}
}

func TestGetResultsOnlyOwnSubmissions(t *testing.T) {
	course, ref := mcqCourse(true, true, false)
	courses := newFakeCourses(course)
	subs := &fakeSubmissions{}
	subSvc := newSubmissionService(courses, subs)
	ctx := context.Background()

	other := Identity{ID: "student-2", DisplayName: "鈴木花子"}
	if _, err := subSvc.SubmitQuiz(ctx, ref, other, SubmitRequest{
		Answers: []grading.SelectedAnswer{{QuestionIndex: 0, SelectedOptionIndex: 0}},
	}); err != nil {
		t.Fatalf("seed submission failed: %v", err)
	}

	_, err := NewResultService(courses, subs).GetResults(ctx, ref, student, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("another student's history must not be visible, got %v", err)
	}
}
