package workflow

import (
	"context"

	"hydrorag/src/core/judge"
	"hydrorag/src/infrastructure/log"
)

// Grader classifies retrieved passages as relevant or irrelevant to a
// question. Grading is a pure function of its inputs and the judge; each
// passage is graded independently of the others.
type Grader struct {
	judge Judge
}

func NewGrader(j Judge) *Grader {
	return &Grader{judge: j}
}

// Grade classifies a single passage
func (g *Grader) Grade(ctx context.Context, question string, passage Passage) (judge.GradeResult, error) {
	return g.judge.GradeDocument(ctx, question, passage.Content)
}

// GradeAll grades every passage in order and returns the relevant subset,
// the full grade list, and whether any passage was judged irrelevant. A
// failed grading call aborts the whole run: a question must not be answered
// from passages of unknown relevance.
func (g *Grader) GradeAll(ctx context.Context, question string, passages []Passage) ([]Passage, []judge.GradeResult, bool, error) {
	relevant := make([]Passage, 0, len(passages))
	grades := make([]judge.GradeResult, 0, len(passages))
	anyIrrelevant := false

	for i, passage := range passages {
		grade, err := g.Grade(ctx, question, passage)
		if err != nil {
			return nil, nil, false, err
		}
		grades = append(grades, grade)

		if grade.Relevant() {
			relevant = append(relevant, passage)
		} else {
			anyIrrelevant = true
			log.Debug("passage graded irrelevant", "position", i, "source", passage.Source)
		}
	}

	return relevant, grades, anyIrrelevant, nil
}
