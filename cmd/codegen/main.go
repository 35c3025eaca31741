package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/glimmer-ui/glimmer/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const arityCountKey = "count"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the CombineN signal helpers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  arityCountKey,
				Usage: "Highest combine arity to generate",
				Value: 8,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for combine helpers started")
	defer func() {
		log.Printf("Codegen for combine helpers finished in %v", time.Since(start))
	}()

	maxArity := cmd.Uint(arityCountKey)
	contents := templates.CombineGen(int(maxArity))
	return os.WriteFile("combine.go", []byte(contents), 0644)
}
