package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dangerclosesec/ciclo/sdk/client"
)

const (
	// Change these values to match your environment
	serviceURL = "http://localhost:8080"
)

const program = `-- running total
total = 0
i = 0
while (i < 10) {
    total = total + i * 2
    i = i + 1
}
avg = total / 10
`

func main() {
	// Initialize the client
	config := &client.Config{
		BaseURL: serviceURL,
		Timeout: 10 * time.Second,
	}
	c := client.NewClient(config)

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Run the example
	if err := runExample(ctx, c); err != nil {
		log.Fatalf("Error running example: %v", err)
	}
}

func runExample(ctx context.Context, c *client.Client) error {
	fmt.Println("Running ciclo SDK example...")

	fmt.Println("\n1. Tokenizing...")
	tokens, err := c.Tokenize(ctx, program)
	if err != nil {
		return err
	}
	fmt.Printf("   %d tokens, %d invalid\n", tokens.Total, len(tokens.Illegal))

	fmt.Println("\n2. Validating cycles...")
	report, err := c.Validate(ctx, program)
	if err != nil {
		return err
	}
	fmt.Println(report.Report)

	fmt.Println("\n3. Optimizing...")
	optimized, err := c.Optimize(ctx, program)
	if err != nil {
		return err
	}
	fmt.Printf("%s   (%.1f%% smaller)\n", optimized.OptimizedCode, optimized.Reduction)

	fmt.Println("\n4. Converting arithmetic expressions...")
	converted, err := c.Convert(ctx, program)
	if err != nil {
		return err
	}
	for _, expr := range converted.Expressions {
		fmt.Printf("   %s => %s\n", expr.Expression, expr.Prefix)
		fmt.Print(expr.QuadruplesSummary)
	}

	fmt.Println("\n5. Infix to prefix...")
	prefix, err := c.Prefix(ctx, "(A+B)*C^D")
	if err != nil {
		return err
	}
	fmt.Printf("   (A+B)*C^D => %s\n", prefix)

	return nil
}
