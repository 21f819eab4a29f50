// Command-line interface for operating a Zara backend
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"zara/zara/bootstrap"
	"zara/zara/config"
	"zara/zara/controllers"
	"zara/zara/services/llm"
	"zara/zara/utils/color"
	"zara/zara/utils/jsonutils"
	"zara/zara/utils/logging"
	"zara/zara/utils/types"

	"go.uber.org/zap"
)

const usage = `Zara CLI usage:
  zara init-db           # Create missing tables
  zara users             # List registered users as JSON
  zara verify-provider   # Send one short prompt to every candidate model
  zara chat              # Chat with Zara as a guest in this terminal`

func main() {
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()
	if *noColor {
		color.DisableColor()
	}
	if flag.NArg() < 1 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Println(color.ColorError("config error: " + err.Error()))
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Println(color.ColorError("logger error: " + err.Error()))
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("startup error", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	switch flag.Arg(0) {
	case "init-db":
		// bootstrap.New already migrated
		fmt.Println(color.ColorSuccess("Database tables are ready."))
	case "users":
		err = listUsers(ctx, app)
	case "verify-provider":
		err = verifyProvider(app)
	case "chat":
		err = chat(app)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Println(color.ColorError(err.Error()))
		os.Exit(1)
	}
}

func listUsers(ctx context.Context, app *bootstrap.App) error {
	users, err := controllers.NewUserController(app.Users).GetAllUsers(ctx)
	if err != nil {
		return err
	}
	fmt.Println(jsonutils.ToJSON(users))
	return nil
}

func verifyProvider(app *bootstrap.App) error {
	completer := bootstrap.NewCompleter(app.Config, app.Persona)
	probe := []llm.Message{
		{Role: "system", Content: app.Persona.SystemPrompt},
		{Role: "user", Content: "Reply with one short greeting."},
	}
	failed := 0
	for _, model := range app.Chain.Candidates() {
		ctx, cancel := context.WithTimeout(context.Background(), app.Config.ProviderTimeout)
		text, err := completer.Complete(ctx, model, probe)
		cancel()
		if err != nil {
			failed++
			fmt.Printf("%s %s\n", color.ColorError("FAIL"), llm.ClassifyError(err, model))
			continue
		}
		fmt.Printf("%s %s: %s\n", color.ColorSuccess("OK"), model, strings.TrimSpace(text))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d models failed", failed, len(app.Chain.Candidates()))
	}
	return nil
}

func chat(app *bootstrap.App) error {
	ctrl := app.ChatController()
	fmt.Println(color.ColorInfo("Chatting with " + app.Persona.Name + " as a guest. Type 'exit' to quit."))
	if !app.Config.ProviderConfigured() {
		fmt.Println(color.ColorWarning("No provider key configured: replies use fallback mode."))
	}

	var history []types.ChatMessage
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}
		if line == "" {
			continue
		}
		history = append(history, types.ChatMessage{Role: "user", Content: line})
		reply, err := ctrl.Converse(context.Background(), controllers.Turn{Messages: history})
		if err != nil {
			fmt.Println(color.ColorError(err.Error()))
			continue
		}
		history = append(history, types.ChatMessage{Role: reply.Role, Content: reply.Content})
		fmt.Println(color.ColorReply(app.Persona.Name + "> " + reply.Content))
	}
	return scanner.Err()
}
