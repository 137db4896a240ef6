package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingopal/internal"
	"codeberg.org/snonux/lingopal/internal/archive"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingopal",
		Short: "AI language learning assistant",
		Long: `lingopal is an AI-powered language learning assistant.

It imports reading material (web search, files, scanned images, URLs),
defines vocabulary on demand, keeps a notebook of words, notes and exam
results, generates quizzes and exams and chats as a personal tutor.

Examples:
  lingopal search "space travel"      # Find reading material
  lingopal import article.txt         # Import a text file or image
  lingopal define serendipity --save  # Look up a word and save it
  lingopal exam                       # Take a generated exam
  lingopal chat                       # Talk to the tutor`,
		Version: internal.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Archive {
				return archive.ArchiveState(flags.StatePath)
			}
			return cmd.Help()
		},
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newSearchCommand(flags),
		newImportCommand(flags),
		newDefineCommand(flags),
		newTranslateCommand(flags),
		newQuizCommand(flags),
		newExamCommand(flags),
		newChatCommand(flags),
		newNotebookCommand(flags),
		newSettingsCommand(flags),
		newModelsCommand(flags),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lingopal.yaml)")
	cmd.PersistentFlags().StringVar(&flags.StatePath, "state", flags.StatePath, "State database path")
	cmd.PersistentFlags().StringVarP(&flags.Language, "language", "l", flags.Language, "Native language for meanings and translations")

	// AI provider flags
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "AI provider (gemini or compatible)")
	cmd.PersistentFlags().StringVar(&flags.BaseURL, "base-url", "", "Endpoint base URL (compatible provider only)")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", flags.Model, "Model name")
	cmd.PersistentFlags().Float64Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature")
	cmd.PersistentFlags().StringVar(&flags.Persona, "persona", "", "Tutor persona text")

	// Local flags
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the current state database and start over")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("state.path", cmd.PersistentFlags().Lookup("state"))
	viper.BindPFlag("language", cmd.PersistentFlags().Lookup("language"))
	viper.BindPFlag("ai.provider", cmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("ai.base_url", cmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("ai.model", cmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("ai.temperature", cmd.PersistentFlags().Lookup("temperature"))
	viper.BindPFlag("ai.persona", cmd.PersistentFlags().Lookup("persona"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lingopal" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lingopal")
	}

	// Environment variables
	viper.SetEnvPrefix("LINGOPAL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("ai.gemini_key")
}

// GetCompatibleKey retrieves the compatible provider API key from
// environment or config
func GetCompatibleKey() string {
	if key := os.Getenv("LINGOPAL_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("ai.api_key")
}
