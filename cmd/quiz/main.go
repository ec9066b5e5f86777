package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"quizbank/internal/client"
	"quizbank/internal/model"
	"quizbank/internal/quiz"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the quizbank server")
	flag.Parse()

	api := client.New(*server)
	app := &app{
		machine: quiz.NewMachine(api),
		editor:  quiz.NewEditor(api),
		in:      bufio.NewScanner(os.Stdin),
	}

	app.run(context.Background())
}

// app is the single-threaded event loop driving the state machine.
// Every iteration renders the current phase and consumes one line of
// input, so only one request can ever be in flight.
type app struct {
	machine *quiz.Machine
	editor  *quiz.Editor
	in      *bufio.Scanner
}

func (a *app) run(ctx context.Context) {
	for {
		if err := a.machine.Load(ctx); err == nil {
			break
		}
		fmt.Printf("Failed to load questions: %v\n", a.machine.LoadError())
		if a.prompt("r = retry, q = quit") != "r" {
			return
		}
	}

	for {
		switch a.machine.Phase() {
		case quiz.PhaseAnswering:
			if !a.answering() {
				return
			}
		case quiz.PhaseRevealed:
			a.revealed()
		case quiz.PhaseCompleted:
			if !a.completed() {
				return
			}
		case quiz.PhaseEditing:
			a.editing(ctx)
		default:
			return
		}
	}
}

func (a *app) answering() bool {
	q := a.machine.Current()
	fmt.Printf("\nQuestion %d of %d: %s\n", a.machine.Index()+1, a.machine.Total(), q.Question)
	for i, opt := range q.Options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}

	switch input := a.prompt("answer 1-4, e = edit, q = quit"); input {
	case "q":
		return false
	case "e":
		a.machine.BeginEditing()
	default:
		n, err := strconv.Atoi(input)
		if err != nil || !a.machine.Select(n-1) {
			fmt.Println("Pick an option between 1 and 4.")
			return true
		}
		a.machine.Submit()
	}
	return true
}

func (a *app) revealed() {
	q := a.machine.Current()
	if a.machine.LastCorrect() {
		fmt.Println("Correct!")
	} else {
		fmt.Printf("Wrong. The answer was: %s\n", q.Options[q.CorrectAnswer])
	}
	if q.Explanation != "" {
		fmt.Println(q.Explanation)
	}

	a.prompt("press enter to continue")
	a.machine.Advance()
}

func (a *app) completed() bool {
	fmt.Printf("\nQuiz complete! Score: %d/%d (%d%%)\n",
		a.machine.Score(), a.machine.Total(), a.machine.Percentage())

	switch a.prompt("r = restart, e = edit, q = quit") {
	case "r":
		a.machine.Restart()
	case "e":
		a.machine.BeginEditing()
	case "q":
		return false
	}
	return true
}

func (a *app) editing(ctx context.Context) {
	fmt.Println("\nQuestion bank:")
	for i, q := range a.machine.Questions() {
		fmt.Printf("  %d) %s\n", i+1, q.Question)
	}

	input := a.prompt("number = edit, a = add, b = back")
	switch input {
	case "b":
		a.machine.CancelEditing()
		return
	case "a":
		a.editDraft(ctx, quiz.NewDraft())
	default:
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > a.machine.Total() {
			fmt.Println("Pick a listed question.")
			return
		}
		a.editDraft(ctx, quiz.EditOf(a.machine.Questions()[n-1]))
	}
}

// editDraft walks the form fields and then loops on save/delete until
// a commit succeeds or the user cancels. Failures keep the draft.
func (a *app) editDraft(ctx context.Context, d *quiz.Draft) {
	a.fillDraft(d)

	for {
		actions := "s = save, c = cancel"
		if a.editor.CanDelete(d, a.machine.Total()) {
			actions = "s = save, d = delete, c = cancel"
		}

		switch a.prompt(actions) {
		case "s":
			if _, err := a.editor.Save(ctx, d); err != nil {
				fmt.Printf("Save failed: %v\n", err)
				continue
			}
		case "d":
			if !a.editor.CanDelete(d, a.machine.Total()) {
				continue
			}
			if err := a.editor.Delete(ctx, d, a.machine.Total()); err != nil {
				fmt.Printf("Delete failed: %v\n", err)
				continue
			}
		case "c":
			a.machine.CancelEditing()
			return
		default:
			continue
		}

		if err := a.machine.Reload(ctx); err != nil {
			fmt.Printf("Failed to refresh questions: %v\n", err)
		}
		return
	}
}

// fillDraft prompts for each field; empty input keeps the current value.
func (a *app) fillDraft(d *quiz.Draft) {
	d.Input.Question = a.promptDefault("Question", d.Input.Question)
	for i := 0; i < model.OptionCount; i++ {
		d.Input.Options[i] = a.promptDefault(fmt.Sprintf("Option %d", i+1), d.Input.Options[i])
	}
	for {
		raw := a.promptDefault("Correct option (1-4)", strconv.Itoa(d.Input.CorrectAnswer+1))
		n, err := strconv.Atoi(raw)
		if err == nil && n >= 1 && n <= model.OptionCount {
			d.Input.CorrectAnswer = n - 1
			break
		}
		fmt.Println("Pick an option between 1 and 4.")
	}
	d.Input.Explanation = a.promptDefault("Explanation", d.Input.Explanation)
}

func (a *app) prompt(hint string) string {
	fmt.Printf("[%s] > ", hint)
	if !a.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(strings.ToLower(a.in.Text()))
}

func (a *app) promptDefault(label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !a.in.Scan() {
		return current
	}
	text := strings.TrimSpace(a.in.Text())
	if text == "" {
		return current
	}
	return text
}
