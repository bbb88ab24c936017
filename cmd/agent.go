package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage knowledge agents",
}

var agentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an agent from one or more documents",
	Long: "Reads each --doc file (use - for stdin), asks the model to summarize " +
		"them into a knowledge base and stores the agent.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		systemPrompt, _ := cmd.Flags().GetString("system-prompt")
		paths, _ := cmd.Flags().GetStringSlice("doc")

		docs := make([]string, 0, len(paths))
		for _, p := range paths {
			text, err := readDocument(cmd, p)
			if err != nil {
				return err
			}
			docs = append(docs, text)
		}

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ag, err := a.Agents.Create(cmd.Context(), name, systemPrompt, docs)
		if err != nil {
			return err
		}

		fmt.Printf("Created agent %s (%s)\n\n", ag.Name, ag.ID)
		fmt.Println(ag.KnowledgeSummary)
		return nil
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		match, _ := cmd.Flags().GetString("match")

		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		agents, err := a.Agents.List(cmd.Context(), match)
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			fmt.Println("No agents found.")
			return nil
		}

		fmt.Printf("%-36s  %-24s  %s\n", "ID", "Name", "Created")
		fmt.Println(rule(80))
		for _, ag := range agents {
			fmt.Printf("%-36s  %-24s  %s\n",
				ag.ID, truncate(ag.Name, 24), ag.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var agentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an agent and its knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ag, err := a.Agents.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		sep := rule(60)
		fmt.Printf("ID:       %s\n", ag.ID)
		fmt.Printf("Name:     %s\n", ag.Name)
		fmt.Printf("Created:  %s\n", ag.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		if ag.SystemPrompt != "" {
			fmt.Printf("Prompt:   %s\n", ag.SystemPrompt)
		}
		fmt.Println()
		fmt.Println(sep)
		fmt.Println("KNOWLEDGE")
		fmt.Println(sep)
		fmt.Println(ag.KnowledgeSummary)
		return nil
	},
}

var agentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		if err := a.Agents.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted agent %s\n", args[0])
		return nil
	},
}

var agentChatCmd = &cobra.Command{
	Use:   "chat <id> <question...>",
	Short: "Ask an agent a question",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		reply, err := a.Agents.Chat(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(b), nil
}

func init() {
	agentCreateCmd.Flags().String("name", "", "Agent name")
	agentCreateCmd.Flags().String("system-prompt", "", "Persona used when chatting with the agent")
	agentCreateCmd.Flags().StringSlice("doc", nil, "Document file to learn from (repeatable, - for stdin)")
	agentCreateCmd.MarkFlagRequired("name")
	agentCreateCmd.MarkFlagRequired("doc")

	agentListCmd.Flags().StringP("match", "m", "", "Fuzzy filter on agent name")

	agentCmd.AddCommand(agentCreateCmd)
	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentShowCmd)
	agentCmd.AddCommand(agentDeleteCmd)
	agentCmd.AddCommand(agentChatCmd)
}
