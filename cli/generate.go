package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pitchcraft/enrichment"
	"pitchcraft/generator"
	"pitchcraft/publisher"
)

// factFlags binds the project and client facts shared by the generation commands.
type factFlags struct {
	project generator.ProjectFacts
	client  generator.ClientProfileFacts
	disc    string
}

func (f *factFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.project.ProjectType, "project-type", "pitch_vendas", "kind of pitch")
	fs.StringVar(&f.project.Description, "description", "", "what is being sold")
	fs.StringVar(&f.project.TargetAudience, "audience", "", "target audience")
	fs.StringVar(&f.client.CompanyName, "company", "", "client company name")
	fs.StringVar(&f.client.Industry, "industry", "", "client industry")
	fs.StringVar(&f.client.Size, "size", "", "client company size")
	fs.StringVar(&f.disc, "disc", "", "client DISC profile (D, I, S or C)")
	fs.StringVar(&f.client.PainPoints, "pain-points", "", "client pain points")
	fs.StringVar(&f.client.Goals, "goals", "", "client goals")
	fs.StringVar(&f.client.CommunicationStyle, "communication-style", "", "how the client communicates")
	fs.StringVar(&f.client.DecisionMaking, "decision-making", "", "how the client decides")
	fs.StringVar(&f.client.Priorities, "priorities", "", "client priorities")
}

func (f *factFlags) facts() (generator.ProjectFacts, generator.ClientProfileFacts, error) {
	client := f.client
	if f.disc != "" {
		client.DiscProfile = generator.DiscProfile(strings.ToUpper(strings.TrimSpace(f.disc)))
		if !client.DiscProfile.Valid() {
			return f.project, client, fmt.Errorf("--disc must be one of D, I, S, C, got %q", f.disc)
		}
	}
	return f.project, client, nil
}

type narrativeOutput struct {
	Narrative generator.Narrative          `json:"narrative"`
	Client    generator.ClientProfileFacts `json:"client"`
	Outcome   outcomeOutput                `json:"outcome"`
}

type outcomeOutput struct {
	Source generator.Source `json:"source"`
	Reason string           `json:"reason,omitempty"`
}

func outcomeOf(o generator.Outcome) outcomeOutput {
	out := outcomeOutput{Source: o.Source}
	if o.Reason != nil {
		out.Reason = o.Reason.Error()
	}
	return out
}

func NarrativeCmd(envFile *string) *cobra.Command {
	var (
		flags       factFlags
		personalize bool
		enrich      bool
		website     string
	)
	cmd := &cobra.Command{
		Use:   "narrative",
		Short: "Write a sales narrative for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, client, err := flags.facts()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a, err := bootstrap(ctx, *envFile, "stderr")
			if err != nil {
				return err
			}
			defer a.close()

			if personalize {
				client = a.gen.EnsureDisc(ctx, client)
			}
			var market generator.MarketFacts
			if enrich {
				profile := a.enricher.Enrich(ctx, enrichment.Basic{
					CompanyName: client.CompanyName,
					Industry:    client.Industry,
					Website:     website,
				})
				records, err := enrichment.MarketRecords(profile)
				if err != nil {
					return err
				}
				market = generator.MarketFacts{
					IndustryTrends:      records.Trends,
					CompetitorAnalysis:  records.Competitors,
					MarketOpportunities: records.Opportunities,
				}
			}

			narrative, out := a.gen.Narrative(ctx, project, client, market)
			return writeJSON(cmd.OutOrStdout(), narrativeOutput{Narrative: narrative, Client: client, Outcome: outcomeOf(out)})
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&personalize, "personalize", false, "classify the DISC profile first when --disc is not given")
	cmd.Flags().BoolVar(&enrich, "enrich", false, "gather market intelligence for the prompt")
	cmd.Flags().StringVar(&website, "website", "", "client website, scraped when --enrich is set")
	return cmd
}

func DiscCmd(envFile *string) *cobra.Command {
	var flags factFlags
	cmd := &cobra.Command{
		Use:   "disc",
		Short: "Classify a client's DISC profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := flags.facts()
			if err != nil {
				return err
			}
			a, err := bootstrap(cmd.Context(), *envFile, "stderr")
			if err != nil {
				return err
			}
			defer a.close()

			profile, out := a.gen.ClassifyDisc(cmd.Context(), client)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"disc_profile": profile,
				"outcome":      outcomeOf(out),
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func ObjectionsCmd(envFile *string) *cobra.Command {
	var (
		flags factFlags
		count int
	)
	cmd := &cobra.Command{
		Use:   "objections",
		Short: "Anticipate client objections with suggested responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, client, err := flags.facts()
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			a, err := bootstrap(cmd.Context(), *envFile, "stderr")
			if err != nil {
				return err
			}
			defer a.close()

			items, out := a.gen.Objections(cmd.Context(), project, client, count)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"objections":      items,
				"total_generated": len(items),
				"outcome":         outcomeOf(out),
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().IntVar(&count, "count", generator.DefaultObjectionCount, "number of objections to ask for")
	return cmd
}

func SlidesCmd(envFile *string) *cobra.Command {
	var (
		flags   factFlags
		asHTML  bool
		publish bool
		title   string
	)
	cmd := &cobra.Command{
		Use:   "slides",
		Short: "Write a narrative and lay it out as a slide deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, client, err := flags.facts()
			if err != nil {
				return err
			}
			a, err := bootstrap(cmd.Context(), *envFile, "stderr")
			if err != nil {
				return err
			}
			defer a.close()

			narrative, _ := a.gen.Narrative(cmd.Context(), project, client, generator.MarketFacts{})
			deck := generator.ComposeSlides(narrative, a.style)
			if publish {
				pub, err := publisher.New(publisher.Config{
					OutDir:     a.cfg.PublishDir,
					WebhookURL: a.cfg.PublishWebhookURL,
				}, nil, a.logger)
				if err != nil {
					return err
				}
				if title == "" {
					title = "Apresentação - " + orDefault(client.CompanyName, "Cliente")
				}
				res, err := pub.Publish(cmd.Context(), publisher.PublishParams{Title: title, Deck: deck})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			}
			if !asHTML {
				return writeJSON(cmd.OutOrStdout(), deck)
			}
			page, err := generator.RenderDeckHTML(deck)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), page)
			return err
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the deck as a standalone HTML page")
	cmd.Flags().BoolVar(&publish, "publish", false, "write the deck to PUBLISH_DIR instead of printing it")
	cmd.Flags().StringVar(&title, "title", "", "deck title used when publishing")
	return cmd
}

func EnrichCmd(envFile *string) *cobra.Command {
	var basic enrichment.Basic
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Gather public and simulated intelligence about a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), *envFile, "stderr")
			if err != nil {
				return err
			}
			defer a.close()

			profile := a.enricher.Enrich(cmd.Context(), basic)
			return writeJSON(cmd.OutOrStdout(), profile)
		},
	}
	cmd.Flags().StringVar(&basic.CompanyName, "company", "", "company name")
	cmd.Flags().StringVar(&basic.Industry, "industry", "", "industry")
	cmd.Flags().StringVar(&basic.Website, "website", "", "company website")
	return cmd
}

func CRMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crm <hubspot|salesforce> <contact-id>",
		Short: "Show a simulated CRM record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, ok := enrichment.SimulatedCRM{}.Contact(cmd.Context(), args[0], args[1])
			if !ok {
				return fmt.Errorf("unsupported crm type %q", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
