package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/export"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/notify"
	"github.com/spigell/resume-analyzer/internal/projection"
	"github.com/spigell/resume-analyzer/internal/session"
	"github.com/spigell/resume-analyzer/internal/upload"
)

const (
	PromptAnalyzeAgain   = "Analyze again"
	PromptAnalyzeAnother = "Analyze another resume"
	PromptExportJSON     = "Export report to JSON"
	PromptExportExcel    = "Export report to Excel"
	PromptExit           = "Exit"

	noFileMessage = "Please select a PDF or DOCX file"
)

var errExit = errors.New("exit requested")

// interruptContext scopes one analysis to Ctrl-C. Each submit gets its own so
// an interrupted attempt does not poison the next one.
var interruptContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE...]",
	Short: "Analyze a resume against ATS criteria",
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("non-interactive", "y", false, "analyze once, print the report and exit")
	analyzeCmd.Flags().Bool("export-json", false, "write the report to a JSON file after a successful analysis")
	analyzeCmd.Flags().Bool("export-xlsx", false, "write the report to an Excel workbook after a successful analysis")
	analyzeCmd.Flags().String("export-dir", "", "directory for exported reports (default is the system temp dir)")

	viper.BindPFlag("export.dir", analyzeCmd.Flags().Lookup("export-dir"))
}

// runner drives one session from the terminal.
type runner struct {
	session *session.Session
	config  *Config
	logger  *zap.Logger
	out     io.Writer
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command, args []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client, err := newClient(config.Service, logger)
	if err != nil {
		logger.Fatal(
			"creating analysis client",
			zap.Error(err),
			zap.String("hint", "set RESUME_ANALYZER_TOKEN_FILE environment variable or the 'service.token-file' key in the configuration file"),
		)
	}

	notifier := notify.NewLogger(logger)
	s := session.New(upload.NewGate(notifier, logger), client, notifier, logger)

	logger.Info("starting the resume-analyzer",
		zap.String("version", version),
		zap.String("url", client.APIURL),
	)

	r := &runner{session: s, config: config, logger: logger, out: os.Stdout}
	interactive := cmd.Flag("non-interactive").Value.String() == "false"

	for paths := args; ; {
		err := r.stage(paths)
		if err == nil {
			break
		}
		if !interactive {
			logger.Fatal("staging resume", zap.Error(err))
		}

		fmt.Fprintln(r.out, stageMessage(err))

		paths, err = askPath()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	ok, err := r.submit()
	if err != nil {
		logger.Fatal("rendering report", zap.Error(err))
	}

	if ok {
		if err := r.autoExport(cmd); err != nil {
			logger.Fatal("exporting report", zap.Error(err))
		}
	}

	if !interactive {
		if !ok {
			logger.Fatal("exiting", zap.String("reason", r.session.Snapshot().ErrorMessage))
		}
		return
	}

	for {
		prompt := promptui.Select{
			Label: "What next?",
			Items: r.actions(),
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := r.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (r *runner) actions() []string {
	switch r.session.State() {
	case session.Succeeded:
		return []string{PromptAnalyzeAgain, PromptAnalyzeAnother, PromptExportJSON, PromptExportExcel, PromptExit}
	case session.Failed:
		return []string{PromptAnalyzeAgain, PromptAnalyzeAnother, PromptExit}
	default:
		return []string{PromptAnalyzeAnother, PromptExit}
	}
}

func (r *runner) handleAction(action string) error {
	switch action {
	case PromptAnalyzeAgain:
		if err := r.session.Restage(); err != nil {
			return err
		}
		_, err := r.submit()
		return err
	case PromptAnalyzeAnother:
		r.session.Reset()
		paths, err := askPath()
		if err != nil {
			return err
		}
		if err := r.stage(paths); err != nil {
			fmt.Fprintln(r.out, stageMessage(err))
			return nil
		}
		_, err = r.submit()
		return err
	case PromptExportJSON:
		return r.exportJSON()
	case PromptExportExcel:
		return r.exportExcel()
	case PromptExit:
		r.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (r *runner) stage(paths []string) error {
	candidates := make([]upload.Candidate, 0, len(paths))
	for _, path := range paths {
		c, err := upload.FromPath(path)
		if err != nil {
			return err
		}
		candidates = append(candidates, c)
	}

	file, err := r.session.Stage(candidates...)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Selected: %s (%s)\n", file.Name, file.SizeMB())
	return nil
}

// submit runs the staged attempt and prints its outcome. It reports whether
// the analysis succeeded; the error is only set when printing failed.
func (r *runner) submit() (bool, error) {
	ctx, stop := interruptContext()
	defer stop()

	err := r.session.Submit(ctx)
	if errors.Is(err, session.ErrStaleResponse) {
		return false, nil
	}

	snap := r.session.Snapshot()
	if err != nil {
		msg := snap.ErrorMessage
		if msg == "" {
			msg = analyzer.UserMessage(err)
		}
		fmt.Fprintf(r.out, "Error: %s\n", msg)
		return false, nil
	}

	return true, projection.Render(r.out, projection.Project(snap.Report))
}

func (r *runner) autoExport(cmd *cobra.Command) error {
	if cmd.Flag("export-json").Value.String() == "true" {
		if err := r.exportJSON(); err != nil {
			return err
		}
	}

	if cmd.Flag("export-xlsx").Value.String() == "true" {
		if err := r.exportExcel(); err != nil {
			return err
		}
	}

	return nil
}

func (r *runner) exportJSON() error {
	filename, err := export.JSON(r.session.Snapshot().Report, r.config.Export.Dir)
	if err != nil {
		return fmt.Errorf("dump report to json: %w", err)
	}

	r.logger.Info("dumping report to file", zap.String("filename", filename))
	return nil
}

func (r *runner) exportExcel() error {
	filename, err := export.Excel(r.session.Snapshot().Report, "", r.config.Export.Dir)
	if err != nil {
		return fmt.Errorf("dump report to excel: %w", err)
	}

	r.logger.Info("dumping report to file", zap.String("filename", filename))
	return nil
}

func stageMessage(err error) string {
	var rejection *upload.RejectionError
	switch {
	case errors.As(err, &rejection):
		return rejection.Message()
	case errors.Is(err, upload.ErrNoFile):
		return noFileMessage
	default:
		return err.Error()
	}
}

func askPath() ([]string, error) {
	prompt := promptui.Prompt{
		Label: "Path to a resume (PDF or DOCX)",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("path is required")
			}
			return nil
		},
	}

	path, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return []string{strings.TrimSpace(path)}, nil
}
