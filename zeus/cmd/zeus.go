// Command-line interface for the Zeus chat and outfit analysis
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"zeus/zeus/agents/analysis"
	"zeus/zeus/agents/core"
	"zeus/zeus/bootstrap"
	"zeus/zeus/config"
	"zeus/zeus/controllers"
	"zeus/zeus/services/llm"
	"zeus/zeus/sources/storage"
	"zeus/zeus/types"
	"zeus/zeus/utils/color"
	"zeus/zeus/utils/logging"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "zeus",
	Short: "Zeus Fashion chat and outfit analysis from the terminal",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(config.LoadConfig().LogDir)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	SilenceUsage: true,
}

var (
	chatAssistant    bool
	chatAnalysisFile string

	analyzeMode        string
	analyzeText        string
	analyzeTemperature float64

	imagePrompt   string
	imageAnalysis string
	imageAspect   string
	imageOut      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Error(err.Error()))
		os.Exit(1)
	}
}

func init() {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE:  runChat,
	}
	chatCmd.Flags().BoolVar(&chatAssistant, "assistant", false, "use the styling assistant instead of the store widget")
	chatCmd.Flags().StringVar(&chatAnalysisFile, "analysis", "", "analysis text file to seed assistant suggestions")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [IMAGE]",
		Short: "Analyze an outfit image or description",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", analysis.DefaultMode, "analysis mode (standard, professional, quick)")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "outfit description when no image is given")
	analyzeCmd.Flags().Float64Var(&analyzeTemperature, "temperature", -1, "sampling temperature between 0 and 1")

	imageCmd := &cobra.Command{
		Use:   "generate-image",
		Short: "Render an outfit image from a prompt or an analysis file",
		RunE:  runGenerateImage,
	}
	imageCmd.Flags().StringVar(&imagePrompt, "prompt", "", "explicit image prompt")
	imageCmd.Flags().StringVar(&imageAnalysis, "analysis", "", "analysis text file to derive the prompt from")
	imageCmd.Flags().StringVar(&imageAspect, "aspect", "1:1", "aspect ratio (1:1, 4:3, 16:9, 3:4, 9:16)")
	imageCmd.Flags().StringVarP(&imageOut, "out", "o", "outfit.png", "output file")

	rootCmd.AddCommand(chatCmd, analyzeCmd, imageCmd)
}

func newApp(cmd *cobra.Command) (*bootstrap.App, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	return bootstrap.New(ctx, config.LoadConfig())
}

func newRenderer() *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return nil
	}
	return r
}

func render(r *glamour.TermRenderer, md string) string {
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func runChat(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	route := types.RouteStore
	if chatAssistant {
		route = types.RouteAssistant
	}
	session := controllers.NewChatController(app.Router, app.Agent, app.Uploader).NewSession(string(route))
	if chatAnalysisFile != "" {
		b, err := os.ReadFile(chatAnalysisFile)
		if err != nil {
			return err
		}
		session.SetAnalysis(string(b))
	}
	renderer := newRenderer()

	fmt.Println(color.Info(fmt.Sprintf("\nZeus Fashion %s chat. Session %s", route, session.ID[:8])))
	fmt.Println("Type a message, a suggestion number, /attach PATH, /clear, or /quit.")
	fmt.Print(color.Suggestions(session.Window()))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.Prompt("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit" || line == "/exit":
			fmt.Println("Goodbye!")
			return nil
		case line == "/clear":
			session.ClearAttachment()
			fmt.Println(color.Info("attachment cleared"))
			continue
		case strings.HasPrefix(line, "/attach "):
			if err := attachFile(session, strings.TrimSpace(strings.TrimPrefix(line, "/attach "))); err != nil {
				fmt.Println(color.Error(err.Error()))
			} else {
				fmt.Println(color.Info("image attached to your next message"))
			}
			continue
		}
		if n, err := strconv.Atoi(line); err == nil {
			window := session.Window()
			if n >= 1 && n <= len(window) {
				line = window[n-1]
				fmt.Println(color.Prompt("you> ") + line)
			}
		}

		res, err := session.Send(cmd.Context(), line)
		if err != nil {
			fmt.Println(color.Error(err.Error()))
			continue
		}
		if res == nil {
			continue
		}
		if res.Failed {
			fmt.Println(color.Error(res.Reply.Text))
			logging.AppLogger.Warn("cli turn failed", zap.Error(res.Err))
		} else {
			fmt.Println(color.Source(string(res.Source)))
			fmt.Print(render(renderer, res.Reply.Text))
		}
		fmt.Print(color.Suggestions(session.Window()))
	}
	return scanner.Err()
}

func attachFile(s *core.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) > storage.MaxUploadBytes {
		return storage.ErrFileTooLarge
	}
	s.Attach(core.Attachment{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	})
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	req := analysis.Request{Mode: analyzeMode, Text: analyzeText}
	if analyzeTemperature >= 0 {
		req.Temperature = &analyzeTemperature
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		jpg, err := storage.CompressImage(data)
		if err != nil {
			return err
		}
		req.Image = &llm.InlineImage{Data: jpg, MIMEType: "image/jpeg"}
	}

	fmt.Println(color.Info("Analyzing..."))
	res, err := app.Analyzer.Analyze(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Print(render(newRenderer(), res.Analysis))
	if len(res.StyleTags) > 0 {
		fmt.Println(color.Info("Style tags: ") + strings.Join(res.StyleTags, ", "))
	}
	fmt.Println(color.Info("Image prompt: ") + res.ImagePrompt)
	fmt.Println(color.Info("Try asking:"))
	fmt.Print(color.Suggestions(res.Suggestions[:min(len(res.Suggestions), 4)]))
	return nil
}

func runGenerateImage(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	req := analysis.ImageRequest{Prompt: imagePrompt, AspectRatio: imageAspect}
	if imageAnalysis != "" {
		b, err := os.ReadFile(imageAnalysis)
		if err != nil {
			return err
		}
		req.Analysis = string(b)
	}
	w, h := analysis.Dimensions(req.AspectRatio)

	fmt.Println(color.Info(fmt.Sprintf("Rendering %dx%d...", w, h)))
	img, err := analysis.Render(cmd.Context(), app.Images, req)
	if err != nil {
		return err
	}
	out := outputPath(imageOut, img.Ext())
	if err := os.WriteFile(out, img.Data, 0o644); err != nil {
		return err
	}
	fmt.Println(color.Info("Saved ") + out)
	return nil
}

// outputPath swaps the extension of path for ext.
func outputPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
