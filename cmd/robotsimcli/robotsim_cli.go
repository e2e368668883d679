// Command robotsimcli is a thin driver over robotsim.Session's three
// façades, grounded on c-robotcli/robot_cli.go's cobra wiring and its
// dual interactive/one-shot invocation style. It is not the excluded
// natural-language command parser (spec.md §1's Non-goals): `goto`,
// `fetch`, and `putdown` are literal subcommands, not a free parser.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"robotsim/internal/config"
	"robotsim/internal/executor"
	"robotsim/internal/gridmap"
	"robotsim/internal/logging"
	"robotsim/internal/planner"
	"robotsim/robotsim"
)

// Global session, mirroring c-robotcli's package-level warehouse/robot_map:
// one simulated home per CLI process, shared across subcommand invocations
// in interactive mode.
var session *robotsim.Session

var seedFlag int64

var rootCmd = &cobra.Command{
	Use:   "robotsimcli",
	Short: "Drive a simulated localising, planning, fetching robot",
	Long: `A command-line driver over robotsim.Session: issue goto/fetch/putdown
goals against a simulated home and inspect the robot's belief state.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("robotsimcli invoked. Use 'status', 'view', 'goto', 'fetch', or 'putdown'.")
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto [room]",
	Short: "Send the robot to a room",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		room := args[0]
		goal := planner.NewWorldState(planner.P(planner.At, planner.Robot, room))
		awaitGoal(goal)
	},
}

var toFlag string

var fetchCmd = &cobra.Command{
	Use:   "fetch [item]",
	Short: "Fetch an item, optionally delivering it to a room",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		item := args[0]
		preds := []planner.Predicate{planner.P(planner.Holding, planner.Robot, item)}
		if toFlag != "" {
			preds = append(preds, planner.P(planner.At, planner.Robot, toFlag))
		}
		awaitGoal(planner.NewWorldState(preds...))
	},
}

var putdownCmd = &cobra.Command{
	Use:   "putdown [item]",
	Short: "Put down a held item in the robot's current room",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		item := args[0]
		room, ok := session.WorldState().RobotRoom()
		if !ok {
			fmt.Println("Error: could not determine robot's current room.")
			return
		}
		goal := planner.NewWorldState(planner.P(planner.At, item, room))
		awaitGoal(goal)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the robot's belief and item state",
	Run: func(cmd *cobra.Command, args []string) {
		mostLikely := session.MostLikely()
		fmt.Printf("most_likely=%v held=%q\n", mostLikely, session.ItemHeld())
		for _, wc := range session.TopK(3) {
			fmt.Printf("  %v: %.3f\n", wc.Cell, wc.Mass)
		}
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print an ASCII view of the simulated home",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(session.Render())
	},
}

// awaitGoal submits goal with the default schema set and blocks for the
// verdict, mirroring how c-robotcli's addTaskCmd fires a goroutine to
// drain a task's error channel, simplified here to a direct wait since
// the CLI has nothing else useful to do meanwhile.
func awaitGoal(goal planner.WorldState) {
	_, result, errs := session.EnqueueGoal(goal, planner.DefaultSchemas())
	select {
	case ok := <-result:
		if ok {
			fmt.Println("Goal succeeded.")
		} else {
			fmt.Println("Goal failed.")
		}
	case err := <-errs:
		fmt.Printf("Goal errored: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 42, "RNG seed")
	fetchCmd.Flags().StringVar(&toFlag, "to", "", "room to deliver the item to")

	rootCmd.AddCommand(gotoCmd, fetchCmd, putdownCmd, statusCmd, viewCmd)
}

func newDefaultSession(seed int64) *robotsim.Session {
	layout, items := buildDefaultScenario()
	m, err := gridmap.New(layout, items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "robotsimcli: building scenario: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.Seed = seed

	connectivity := executor.NewConnectivity(
		[2]string{"kitchen", "living_room"}, [2]string{"living_room", "kitchen"},
		[2]string{"kitchen", "bedroom"}, [2]string{"bedroom", "kitchen"},
		[2]string{"living_room", "bathroom"}, [2]string{"bathroom", "living_room"},
		[2]string{"bedroom", "bathroom"}, [2]string{"bathroom", "bedroom"},
	)

	return robotsim.NewSession(m, cfg, gridmap.Cell{X: 1, Y: 1}, connectivity, nil, logging.Default())
}

func main() {
	// A first pass over os.Args just to honour --seed before building the
	// session; cobra itself parses flags again per Execute() call below.
	for i := 1; i < len(os.Args); i++ {
		val, ok := strings.CutPrefix(os.Args[i], "--seed=")
		if !ok && os.Args[i] == "--seed" && i+1 < len(os.Args) {
			val, ok = os.Args[i+1], true
		}
		if ok {
			_ = rootCmd.PersistentFlags().Set("seed", val)
		}
	}
	session = newDefaultSession(seedFlag)

	if len(os.Args) > 1 {
		if err := rootCmd.Execute(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		return
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Interactive robotsimcli. Type 'exit' to quit.")
	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Error reading input:", err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.ToLower(input) == "exit" {
			fmt.Println("Goodbye!")
			return
		}
		rootCmd.SetArgs(strings.Split(input, " "))
		if err := rootCmd.Execute(); err != nil {
			fmt.Println(err)
		}
	}
}
