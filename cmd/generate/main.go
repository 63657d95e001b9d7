// Command generate builds a slide deck or runs a quiz from a local document.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"slidequiz/internal/adapter"
	"slidequiz/internal/adapter/llm"
	"slidequiz/internal/config"
	"slidequiz/internal/domain"
	"slidequiz/internal/dto"
	"slidequiz/internal/extractor"
	"slidequiz/internal/logger"
	"slidequiz/internal/render/pptx"
	"slidequiz/internal/render/report"
	"slidequiz/internal/service"

	"go.uber.org/zap"
)

type options struct {
	mode       string
	in         string
	template   string
	slides     int
	difficulty string
	out        string
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "slides", "slides or quiz")
	flag.StringVar(&opts.in, "in", "", "input document (.pdf, .txt, .md)")
	flag.StringVar(&opts.template, "template", "", "optional .pptx template")
	flag.IntVar(&opts.slides, "slides", 5, "number of slides")
	flag.StringVar(&opts.difficulty, "difficulty", "medium", "quiz difficulty: easy, medium or hard")
	flag.StringVar(&opts.out, "out", "", "output file (deck for slides, PDF report for quiz)")
	flag.Parse()

	if opts.in == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	models, err := llm.NewModels(cfg.LLM, cfg.Generation)
	if err != nil {
		l.Fatal("Failed to create LLM client", zap.Error(err))
	}
	memo := adapter.NewMemoryCacheAdapter()
	requester := llm.NewStructuredContentRequester(models, cfg.Generation, cfg.LLM, memo, l)
	textExtractor := extractor.NewExtractor(l)

	data, err := os.ReadFile(opts.in)
	if err != nil {
		l.Fatal("Failed to read input", zap.String("path", opts.in), zap.Error(err))
	}
	doc := domain.Document{Name: filepath.Base(opts.in), Data: data}

	ctx := context.Background()
	switch opts.mode {
	case "slides":
		svc := service.NewPresentationService(textExtractor, requester, pptx.NewRenderer(), l)
		err = runSlides(ctx, svc, doc, opts)
	case "quiz":
		svc := service.NewQuizService(textExtractor, requester, memo, nil, report.NewGenerator(report.DefaultConfig()), cfg, l)
		err = runQuiz(ctx, svc, doc, opts, os.Stdin, os.Stdout)
	default:
		err = fmt.Errorf("unknown mode %q", opts.mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printProgress(progress float64) {
	fmt.Fprintf(os.Stderr, "\rExtracting text... %3.0f%%", progress*100)
	if progress >= 1 {
		fmt.Fprintln(os.Stderr)
	}
}

func runSlides(ctx context.Context, svc service.PresentationService, doc domain.Document, opts options) error {
	var template []byte
	if opts.template != "" {
		var err error
		if template, err = os.ReadFile(opts.template); err != nil {
			return fmt.Errorf("read template: %w", err)
		}
	}

	file, err := svc.Generate(ctx, doc, template, opts.slides, printProgress)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = file.FileName
	}
	if err := os.WriteFile(out, file.Data, 0o644); err != nil {
		return fmt.Errorf("write presentation: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d slides to %s\n", file.SlideCount, out)
	return nil
}

func runQuiz(ctx context.Context, svc service.QuizService, doc domain.Document, opts options, in io.Reader, out io.Writer) error {
	difficulty, ok := domain.ParseDifficulty(opts.difficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q", opts.difficulty)
	}

	session, err := svc.Generate(ctx, doc, difficulty, printProgress)
	if err != nil {
		return err
	}
	if session.Warning != "" {
		fmt.Fprintln(out, session.Warning)
		return nil
	}

	scanner := bufio.NewScanner(in)
	for _, q := range session.Questions {
		if err := askQuestion(ctx, svc, session.ID, q, scanner, out); err != nil {
			return err
		}
	}

	result, err := svc.Submit(ctx, session.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nScore: %d/%d\n", result.Score, result.Total)
	for i, item := range result.Items {
		mark := "x"
		if item.IsCorrect {
			mark = "ok"
		}
		fmt.Fprintf(out, "%d. [%s] %s (correct: %s)\n", i+1, mark, item.Question, item.Correct)
	}

	if opts.out != "" {
		file, err := svc.RenderReport(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.out, file.Data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote report to %s\n", opts.out)
	}
	return nil
}

// askQuestion prompts until the answer is accepted. An empty line or EOF
// leaves the question unanswered.
func askQuestion(ctx context.Context, svc service.QuizService, sessionID string, q dto.QuestionView, scanner *bufio.Scanner, out io.Writer) error {
	fmt.Fprintf(out, "\n%d. %s\n", q.Index+1, q.Question)
	for _, opt := range q.Options {
		fmt.Fprintf(out, "   %s) %s\n", opt.Letter, opt.Text)
	}

	for {
		fmt.Fprint(out, "Your answer: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())
		if choice == "" {
			return nil
		}
		if _, err := svc.SelectAnswer(ctx, sessionID, q.Index, choice); err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == domain.CodeInvalidInput {
				fmt.Fprintln(out, "Please answer with one of the option letters.")
				continue
			}
			return err
		}
		return nil
	}
}
