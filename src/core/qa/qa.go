package qa

import (
	"context"
	"errors"

	"hydrorag/src/core/documents"
	"hydrorag/src/core/evaluation"
	"hydrorag/src/core/session"
	"hydrorag/src/core/workflow"
	"hydrorag/src/infrastructure/log"
)

var ErrSessionNotFound = errors.New("session not found")

// Judge covers everything the question workflow asks of the judge model.
type Judge = workflow.Judge

// Service glues document processing, sessions and the question workflow
// into the operations the HTTP and CLI surfaces expose.
type Service struct {
	processor *documents.Processor
	sessions  *session.Store
	judge     Judge
	llm       workflow.LLM
}

func NewService(processor *documents.Processor, sessions *session.Store, j Judge, llm workflow.LLM) *Service {
	return &Service{
		processor: processor,
		sessions:  sessions,
		judge:     j,
		llm:       llm,
	}
}

// UploadDocument indexes a file and opens a session over it. Re-uploading a
// file with the same name and size returns the existing session untouched.
func (s *Service) UploadDocument(ctx context.Context, filename string, content []byte) (*session.Session, bool, error) {
	key := session.FileKey(filename, int64(len(content)))
	if sess, ok := s.sessions.Find(key); ok {
		log.Debug("reusing session for already indexed file", "file_key", key, "session", sess.ID)
		return sess, true, nil
	}

	index, err := s.processor.Process(ctx, filename, content)
	if err != nil {
		return nil, false, err
	}

	sess := s.sessions.Create(key, index, s.processor.Retriever(index))
	return sess, false, nil
}

// Ask runs one question through the workflow against a session's document.
func (s *Service) Ask(ctx context.Context, sessionID, question string) (*workflow.State, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	wf := workflow.NewService(sess.Retriever, s.judge, s.llm)
	return wf.ProcessQuestion(ctx, question)
}

// CloseSession drops a session and the vector class behind it.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	if err := s.processor.Drop(ctx, sess.Index); err != nil {
		return err
	}
	s.sessions.Delete(sessionID)
	return nil
}

// AnswerFunc exposes Ask in the shape the evaluation coordinator consumes.
func (s *Service) AnswerFunc() evaluation.AnswerFunc {
	return func(ctx context.Context, sessionID, question string) (evaluation.Answer, error) {
		state, err := s.Ask(ctx, sessionID, question)
		if err != nil {
			return evaluation.Answer{}, err
		}
		return evaluation.Answer{
			Text:    state.Solution,
			Context: workflow.FormatPassages(state.Documents),
		}, nil
	}
}
