// Package chat orchestrates documentation tasks: scan and filter the local
// codebase, assemble the prompt, call the model, parse the reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"docrelay/internal/llmclient"
	"docrelay/internal/llmtool"
	"docrelay/internal/safeio"
	"docrelay/internal/scan"
)

var (
	// ErrNoFilesSelected rejects process_with_files before any file I/O.
	ErrNoFilesSelected = errors.New("no files selected")
	// ErrProcessFailed wraps model-call failures; the handler surfaces it as
	// a generic 500 with detail only outside production.
	ErrProcessFailed = errors.New("failed to process AI request")
)

const (
	// maxFileBytes caps a single selected file in the bundle.
	maxFileBytes = 1 << 20
	// maxBundleBytes caps the combined bundle sent to the model.
	maxBundleBytes = 4 << 20
)

// Service runs one documentation task per call; no state survives a request.
type Service struct {
	llm     llmclient.Client
	scanner *scan.Scanner
	policy  *scan.Policy
	fs      *safeio.FS
}

func New(llm llmclient.Client, policy *scan.Policy, fs *safeio.FS) *Service {
	if policy == nil {
		policy = scan.DefaultPolicy()
	}
	return &Service{
		llm:     llm,
		scanner: scan.New(policy),
		policy:  policy,
		fs:      fs,
	}
}

// Process executes the task and returns the terminal result. All model-call
// failures come back wrapped in ErrProcessFailed.
func (s *Service) Process(ctx context.Context, task llmtool.Task) (*llmtool.TaskResult, error) {
	switch task.Action {
	case llmtool.ActionAnalyzeCodebase:
		return s.analyzeCodebase(ctx, task)
	case llmtool.ActionProcessWithFiles:
		return s.processWithFiles(ctx, task)
	default:
		return s.simple(ctx, task)
	}
}

func (s *Service) simple(ctx context.Context, task llmtool.Task) (*llmtool.TaskResult, error) {
	prompt, err := llmtool.BuildPrompt(task, nil, nil)
	if err != nil {
		return nil, err
	}
	reply, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessFailed, err)
	}
	res := llmtool.ParseTaskReply(task.Action, reply)
	return &res, nil
}

func (s *Service) analyzeCodebase(ctx context.Context, task llmtool.Task) (*llmtool.TaskResult, error) {
	if s.fs == nil {
		return nil, scan.ErrRootNotFound
	}
	entries, err := s.scanner.Scan(s.fs.Root())
	if err != nil {
		return nil, err
	}
	candidates := s.policy.FilterRelevant(entries)
	paths := make([]string, 0, len(candidates))
	for _, e := range candidates {
		paths = append(paths, e.Path)
	}
	log.Printf("chat: analyze_codebase over %d candidate files", len(paths))

	prompt, err := llmtool.BuildPrompt(task, paths, nil)
	if err != nil {
		return nil, err
	}
	reply, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessFailed, err)
	}
	analysis := llmtool.ParseAnalysis(reply)
	return &llmtool.TaskResult{
		Explanation:           analysis.Reasoning,
		Action:                task.Action,
		FileAnalysis:          &analysis,
		NeedsUserConfirmation: true,
	}, nil
}

func (s *Service) processWithFiles(ctx context.Context, task llmtool.Task) (*llmtool.TaskResult, error) {
	if len(task.SelectedFiles) == 0 {
		return nil, ErrNoFilesSelected
	}
	if s.fs == nil {
		return nil, scan.ErrRootNotFound
	}
	files := s.readSelected(task.SelectedFiles)

	prompt, err := llmtool.BuildPrompt(task, nil, files)
	if err != nil {
		return nil, err
	}
	reply, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessFailed, err)
	}
	res := llmtool.ParseTaskReply(task.Action, reply)
	return &res, nil
}

// readSelected materializes the selected paths. Individual failures degrade
// to inline placeholders so one bad path never sinks the batch, and the
// combined bundle is capped at maxBundleBytes.
func (s *Service) readSelected(paths []string) []llmtool.FileContent {
	files := make([]llmtool.FileContent, 0, len(paths))
	total := 0
	for _, p := range paths {
		files = append(files, llmtool.FileContent{Path: p, Text: s.readOne(p, &total)})
	}
	return files
}

func (s *Service) readOne(path string, total *int) string {
	info, err := s.fs.Stat(path)
	if err != nil {
		log.Printf("chat: stat %s: %v", path, err)
		return "[Could not read file]"
	}
	if info.IsDir() {
		return "[Directory]"
	}
	if info.Size() > maxFileBytes {
		return "[File too large to include]"
	}
	if *total+int(info.Size()) > maxBundleBytes {
		return "[Omitted: combined file size limit reached]"
	}
	b, err := s.fs.ReadFile(path)
	if err != nil {
		log.Printf("chat: read %s: %v", path, err)
		return "[Could not read file]"
	}
	*total += len(b)
	return string(b)
}
