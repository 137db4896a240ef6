package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingopal/internal"
	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/assistant"
	"codeberg.org/snonux/lingopal/internal/batch"
	"codeberg.org/snonux/lingopal/internal/models"
	"codeberg.org/snonux/lingopal/internal/quiz"
	"codeberg.org/snonux/lingopal/internal/store"
)

// openAssistant opens the state store and builds the assistant on top of
// it. AI settings persisted in the store win; flags, config file and
// environment fill any gaps, and the merged settings are written back.
func openAssistant(flags *Flags) (*assistant.Assistant, error) {
	statePath := flags.StatePath
	if viper.IsSet("state.path") && viper.GetString("state.path") != "" {
		statePath = viper.GetString("state.path")
	}

	st, err := store.Open(statePath)
	if err != nil {
		return nil, err
	}

	settings := st.Settings()
	if settings.Provider == "" {
		settings.Provider = flags.Provider
	}
	if settings.Model == "" {
		settings.Model = flags.Model
	}
	if settings.Temperature == 0 {
		settings.Temperature = float32(flags.Temperature)
	}
	if settings.BaseURL == "" {
		settings.BaseURL = flags.BaseURL
	}
	if settings.Persona == "" {
		settings.Persona = flags.Persona
	}
	if settings.APIKey == "" {
		if settings.Provider == ai.ProviderCompatible {
			settings.APIKey = GetCompatibleKey()
		} else {
			settings.APIKey = GetGeminiKey()
		}
	}
	st.UpdateSettings(settings)

	return assistant.New(st)
}

func newSearchCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <topic>",
		Short: "Find reading material about a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			topic := strings.Join(args, " ")
			fmt.Printf("Searching for articles about %q...\n", topic)
			articles, err := a.SearchArticles(cmd.Context(), topic)
			if err != nil {
				return err
			}
			if len(articles) == 0 {
				fmt.Println("No articles found.")
				return nil
			}
			for _, article := range articles {
				fmt.Printf("  [%s] %s (%d chars)\n", article.ID, article.Title, len(article.Content))
			}
			fmt.Printf("Imported %d article(s).\n", len(articles))
			return nil
		},
	}
}

func newImportCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [path or URL]",
		Short: "Import a text file, a scanned image, a URL or pasted text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			var article store.Article
			switch {
			case flags.FromText || len(args) == 0:
				fmt.Println("Paste the text, end with Ctrl-D:")
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read text: %w", err)
				}
				article = a.ImportText(cmd.Context(), string(raw), "pasted text")
			case flags.FromURL || strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://"):
				article, err = a.ImportURL(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			default:
				article, err = a.ImportFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			}

			fmt.Printf("Imported %q (%s, %d chars)\n", article.Title, article.Origin, len(article.Content))
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.FromURL, "url", false, "Treat the argument as a URL")
	cmd.Flags().BoolVar(&flags.FromText, "text", false, "Read pasted text from stdin")
	return cmd
}

func newDefineCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "define [word]",
		Short: "Look up a word, optionally in the context of a sentence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			if flags.WordFile != "" {
				return defineBatch(cmd.Context(), a, flags.WordFile)
			}
			if len(args) == 0 {
				return fmt.Errorf("a word or --batch file is required")
			}

			word := args[0]
			if flags.Save {
				saved, err := a.DefineAndSave(cmd.Context(), word, flags.Context)
				if err != nil {
					return err
				}
				printDefinition(saved.Definition)
				fmt.Printf("Saved to notebook (%d words total).\n", a.Store().Stats().WordCount)
				return nil
			}

			def, err := a.Define(cmd.Context(), word, flags.Context)
			if err != nil {
				return err
			}
			printDefinition(def)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Context, "context", "", "Sentence the word was found in")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Save the word to the notebook")
	cmd.Flags().StringVar(&flags.WordFile, "batch", "", "Define and save words from file (one per line)")
	return cmd
}

func defineBatch(ctx context.Context, a *assistant.Assistant, path string) error {
	entries, err := batch.ReadWordFile(path)
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0
	for i, entry := range entries {
		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Word)
		if _, err := a.DefineAndSave(ctx, entry.Word, entry.Context); err != nil {
			fmt.Fprintf(os.Stderr, "Error defining '%s': %v\n", entry.Word, err)
			errorCount++
			continue
		}
		processedCount++
	}

	fmt.Printf("\n=== Batch Summary ===\n")
	fmt.Printf("Total words: %d\n", len(entries))
	fmt.Printf("Saved: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	return nil
}

func printDefinition(def store.WordDefinition) {
	fmt.Printf("\n%s", def.Word)
	if def.Phonetic != "" {
		fmt.Printf(" %s", def.Phonetic)
	}
	if def.PartOfSpeech != "" {
		fmt.Printf(" (%s)", def.PartOfSpeech)
	}
	fmt.Printf(" [%s]\n", def.Level)
	fmt.Printf("  Meaning: %s\n", def.Meaning)
	fmt.Printf("  Definition: %s\n", def.Definition)
	if def.Example != "" {
		fmt.Printf("  Example: %s\n", def.Example)
	}
	if len(def.Synonyms) > 0 {
		fmt.Printf("  Synonyms: %s\n", strings.Join(def.Synonyms, ", "))
	}
	if len(def.Antonyms) > 0 {
		fmt.Printf("  Antonyms: %s\n", strings.Join(def.Antonyms, ", "))
	}
	if len(def.Related) > 0 {
		fmt.Printf("  Related: %s\n", strings.Join(def.Related, ", "))
	}
}

func newTranslateCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text into your native language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			translated, err := a.Translate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(translated)
			return nil
		},
	}
}

func newQuizCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz [word]",
		Short: "Take a quick quiz on a saved word",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			var word string
			var savedID string
			if len(args) > 0 {
				word = args[0]
			} else {
				words := a.Store().Words()
				if len(words) == 0 {
					return fmt.Errorf("no saved words yet; use 'lingopal define --save' first")
				}
				picked := words[rand.Intn(len(words))]
				word = picked.Definition.Word
				savedID = picked.ID
			}

			question, err := a.WordQuiz(cmd.Context(), word)
			if err != nil {
				return err
			}

			answer, err := askQuestion(cmd.InOrStdin(), question, 0, 1)
			if err != nil {
				return err
			}
			if answer == question.CorrectIndex {
				fmt.Println("Correct!")
				if savedID != "" {
					a.Store().MarkWordReviewed(savedID)
				}
			} else {
				fmt.Printf("Not quite. The answer was: %s\n", question.Options[question.CorrectIndex])
			}
			if question.Explanation != "" {
				fmt.Println(question.Explanation)
			}
			return nil
		},
	}
}

func newExamCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Take a generated exam over your recent vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			fmt.Println("Generating exam...")
			questions, err := a.GenerateExam(cmd.Context(), flags.Requirements)
			if err != nil {
				return err
			}

			answers := make([]int, len(questions))
			for i, question := range questions {
				answer, err := askQuestion(cmd.InOrStdin(), question, i, len(questions))
				if err != nil {
					return err
				}
				answers[i] = answer
			}

			result := a.RecordExam(questions, answers, "vocabulary exam")
			fmt.Printf("\nScore: %d%% (%d questions)\n", result.Score, result.Total)
			for _, mistake := range result.Mistakes {
				fmt.Printf("  Missed: %s\n    Correct answer: %s\n", mistake.Question, mistake.Answer)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Requirements, "requirements", "", "Free-text requirements for the exam content")
	return cmd
}

// askQuestion prints one question and reads a 1-based option choice,
// returning the 0-based index, or -1 when the input is not a choice.
func askQuestion(in io.Reader, question store.QuizQuestion, index, total int) (int, error) {
	fmt.Printf("\nQuestion %d/%d [%s]\n%s\n", index+1, total, question.Kind, question.Prompt)
	for i, option := range question.Options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}
	fmt.Print("Your answer: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return -1, scanner.Err()
	}
	choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || choice < 1 || choice > len(question.Options) {
		return -1, nil
	}
	return choice - 1, nil
}

func newChatCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to your AI tutor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			// Surprise quiz prompts pop up between turns once enough
			// words are saved, like in a study session.
			scheduler := quiz.NewScheduler(func() {
				fmt.Print("\n(Surprise quiz due! Run 'lingopal quiz' to review a saved word.)\n> ")
			})
			defer scheduler.Stop()
			scheduler.Reschedule(a.Store().Stats().WordCount, false)

			fmt.Println("Chat with your tutor. Type /quit to leave.")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				message := strings.TrimSpace(scanner.Text())
				if message == "" {
					continue
				}
				if message == "/quit" || message == "/exit" {
					return nil
				}
				reply, err := a.Chat(cmd.Context(), message)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					continue
				}
				fmt.Printf("\n%s\n\n", reply)
				scheduler.Reschedule(a.Store().Stats().WordCount, false)
			}
		},
	}
}

func newNotebookCommand(flags *Flags) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "notebook [words|notes|exams]",
		Short: "Browse the notebook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			tab := "words"
			if len(args) > 0 {
				tab = args[0]
			}
			switch tab {
			case "words":
				printWords(a.Store().Words(), filter)
			case "notes":
				printNotes(a.Store().Notes(), filter)
			case "exams":
				printExamResults(a.Store().ExamResults())
			default:
				return fmt.Errorf("unknown notebook tab: %s", tab)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&filter, "filter", "", "Only show entries containing this text")

	cmd.AddCommand(
		newNotebookAddNoteCommand(flags),
		newNotebookEditNoteCommand(flags),
		newNotebookDeleteCommand(flags),
		newNotebookExportCommand(flags),
	)
	return cmd
}

func printWords(words []store.SavedWord, filter string) {
	shown := 0
	for _, w := range words {
		if filter != "" && !containsFold(w.Definition.Word, filter) && !containsFold(w.Definition.Meaning, filter) {
			continue
		}
		fmt.Printf("  [%s] %s [%s] - %s (reviewed %dx)\n",
			w.ID, w.Definition.Word, w.Definition.Level, w.Definition.Meaning, w.ReviewCount)
		shown++
	}
	fmt.Printf("%d word(s)\n", shown)
}

func printNotes(notes []store.Note, filter string) {
	shown := 0
	for _, n := range notes {
		if filter != "" && !containsFold(n.Title, filter) && !containsFold(n.Body, filter) {
			continue
		}
		fmt.Printf("  [%s] %s", n.ID, n.Title)
		if len(n.Tags) > 0 {
			fmt.Printf(" (%s)", strings.Join(n.Tags, ", "))
		}
		fmt.Println()
		shown++
	}
	fmt.Printf("%d note(s)\n", shown)
}

func printExamResults(results []store.ExamResult) {
	for _, r := range results {
		fmt.Printf("  [%s] %s: %d%% of %d questions on %s\n",
			r.ID, r.Kind, r.Score, r.Total, r.TakenAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("%d result(s)\n", len(results))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func newNotebookAddNoteCommand(flags *Flags) *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "add-note <title> <body>",
		Short: "Add a note to the notebook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			note := a.Store().AddNote(args[0], args[1], tags)
			fmt.Printf("Added note [%s] %s\n", note.ID, note.Title)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags for the note")
	return cmd
}

func newNotebookEditNoteCommand(flags *Flags) *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "edit-note <id> <title> <body>",
		Short: "Replace a note's content",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			if !a.Store().UpdateNote(args[0], args[1], args[2], tags) {
				return fmt.Errorf("no note with ID %s", args[0])
			}
			fmt.Printf("Updated note %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags for the note")
	return cmd
}

func newNotebookDeleteCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an article, word or note by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			id := args[0]
			st := a.Store()
			if st.DeleteWord(id) || st.DeleteNote(id) || st.DeleteArticle(id) {
				fmt.Printf("Deleted %s\n", id)
				return nil
			}
			return fmt.Errorf("no entry with ID %s", id)
		},
	}
}

func newNotebookExportCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.csv]",
		Short: "Export saved words as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			path := fmt.Sprintf("words-%s.csv", internal.SanitizeFilename(a.Store().Language()))
			if len(args) > 0 {
				path = args[0]
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()

			w := csv.NewWriter(f)
			w.Write([]string{"word", "phonetic", "meaning", "definition", "example", "level"})
			for _, word := range a.Store().Words() {
				d := word.Definition
				w.Write([]string{d.Word, d.Phonetic, d.Meaning, d.Definition, d.Example, d.Level})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			fmt.Printf("Exported %d word(s) to %s\n", len(a.Store().Words()), path)
			return nil
		},
	}
}

func newSettingsCommand(flags *Flags) *cobra.Command {
	var apiKey string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the AI settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAssistant(flags)
			if err != nil {
				return err
			}
			defer a.Store().Close()

			settings := a.Store().Settings()
			changed := false
			if flagChangedOnParent(cmd, "provider") {
				settings.Provider = flags.Provider
				changed = true
			}
			if flagChangedOnParent(cmd, "base-url") {
				settings.BaseURL = flags.BaseURL
				changed = true
			}
			if flagChangedOnParent(cmd, "model") {
				settings.Model = flags.Model
				changed = true
			}
			if flagChangedOnParent(cmd, "temperature") {
				settings.Temperature = float32(flags.Temperature)
				changed = true
			}
			if flagChangedOnParent(cmd, "persona") {
				settings.Persona = flags.Persona
				changed = true
			}
			if cmd.Flags().Changed("api-key") {
				settings.APIKey = apiKey
				changed = true
			}
			if flagChangedOnParent(cmd, "language") {
				a.Store().SetLanguage(flags.Language)
			}

			if changed {
				if err := a.UpdateSettings(settings); err != nil {
					return err
				}
				fmt.Println("Settings updated.")
			}

			settings = a.Store().Settings()
			fmt.Printf("Provider:    %s\n", settings.Provider)
			if settings.BaseURL != "" {
				fmt.Printf("Base URL:    %s\n", settings.BaseURL)
			}
			fmt.Printf("Model:       %s\n", settings.Model)
			fmt.Printf("Temperature: %.2f\n", settings.Temperature)
			fmt.Printf("Language:    %s\n", a.Store().Language())
			if settings.Persona != "" {
				fmt.Printf("Persona:     %s\n", settings.Persona)
			}
			stats := a.Store().Stats()
			fmt.Printf("Notebook:    %d words, %d articles", stats.WordCount, stats.ArticleCount)
			if stats.EstimatedLevel != "" {
				fmt.Printf(", estimated level %s", stats.EstimatedLevel)
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the selected provider")
	return cmd
}

// flagChangedOnParent reports whether a persistent flag defined on the
// root command was set on this invocation.
func flagChangedOnParent(cmd *cobra.Command, name string) bool {
	flag := cmd.InheritedFlags().Lookup(name)
	return flag != nil && flag.Changed
}

func newModelsCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models offered by the compatible endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL := flags.BaseURL
			if baseURL == "" {
				baseURL = viper.GetString("ai.base_url")
			}
			lister := models.NewLister(ai.Config{
				BaseURL: baseURL,
				APIKey:  GetCompatibleKey(),
			})
			return lister.ListAvailableModels()
		},
	}
}
