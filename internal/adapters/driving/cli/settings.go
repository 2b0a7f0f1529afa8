package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure chunking, retrieval, the evidence gate, storage and
the optional LLM delegate.

Settings are stored in ~/.casegen/config.toml. API keys may instead be
provided through CASEGEN_LLM_API_KEY, OPENAI_API_KEY, GROQ_API_KEY or
ANTHROPIC_API_KEY, including from a .env file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used to generate use-cases.

Without a provider, use-cases are generated from built-in templates.`,
	RunE: runSettingsLLM,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by its dotted key, for example:

  casegen settings set retrieval.backend bm25
  casegen settings set gate.threshold 0.25

The value is validated before it is saved. Run 'casegen settings keys'
to list every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		for _, key := range settingsService.Keys() {
			cmd.Println(key)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Strategy: %s\n", settings.Chunking.Strategy.Description())
	if settings.Chunking.Strategy == domain.ChunkStrategyOverlap {
		cmd.Printf("  Window: %d words, %d overlap\n", settings.Chunking.ChunkSize, settings.Chunking.Overlap)
	} else {
		cmd.Printf("  Words: %d-%d\n", settings.Chunking.MinWords, settings.Chunking.MaxWords)
	}
	cmd.Printf("  Minimum chars: %d\n", settings.Chunking.MinChars)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Backend: %s (%s)\n", settings.Retrieval.Backend, settings.Retrieval.Backend.RetrievalMode())
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	switch settings.Retrieval.Backend {
	case domain.IndexBackendTFIDF:
		cmd.Printf("  Alpha: %.2f\n", settings.Retrieval.Alpha)
		cmd.Printf("  Max features: %d\n", settings.Retrieval.MaxFeatures)
	case domain.IndexBackendBM25:
		cmd.Printf("  Score floor: %.2f\n", settings.Retrieval.BM25Floor)
	}
	cmd.Printf("  Gate threshold: %.2f\n", settings.Gate.Threshold)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	if settings.Storage.Dir != "" {
		cmd.Printf("  Directory: %s\n", settings.Storage.Dir)
	}
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	if settings.LLM.Provider.IsValid() {
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
		if settings.LLM.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
		}
		if settings.LLM.Provider.RequiresAPIKey() {
			if settings.LLM.APIKey != "" {
				cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
			} else {
				cmd.Printf("  API Key: (not set)\n")
			}
		}
		cmd.Printf("  Timeout: %s\n", settings.LLM.Timeout)
		cmd.Printf("  Requests per minute: %d\n", settings.LLM.RequestsPerMinute)
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured (templates)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	if capabilities != nil {
		cmd.Println("[Capabilities]")
		cmd.Printf("  PDF extraction: %s\n", yesNo(capabilities.PDFExtraction))
		cmd.Printf("  OCR: %s\n", yesNo(capabilities.OCR))
		cmd.Printf("  LLM: %s\n", yesNo(capabilities.LLM))
		cmd.Println()
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'casegen settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureLLMProvider(cmd, reader)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	display := value
	if key == "llm.api_key" {
		display = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, display)
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			cmd.Println("No key entered; using the key from the environment.")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
