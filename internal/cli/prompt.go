package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/cmwen/minpmt/internal/ticket"
)

var errPromptAborted = errors.New("aborted")

// promptCreateInput fills in missing create fields interactively. Fields
// already provided via flags or arguments are not asked again. Ctrl-C
// aborts without creating anything.
func promptCreateInput(in *ticket.CreateInput) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)

	if in.Title == "" {
		title, err := promptValue(line, "title: ")
		if err != nil {
			return err
		}

		in.Title = title
	}

	if in.Description == "" {
		desc, err := promptValue(line, "description (optional): ")
		if err != nil {
			return err
		}

		in.Description = desc
	}

	if in.Priority == "" {
		line.SetCompleter(completerFor(ticket.ValidPriorities()))

		priority, err := promptValue(line, "priority (optional): ")
		if err != nil {
			return err
		}

		in.Priority = priority

		line.SetCompleter(nil)
	}

	if len(in.Labels) == 0 {
		labels, err := promptValue(line, "labels, comma-separated (optional): ")
		if err != nil {
			return err
		}

		in.Labels = splitLabels(labels)
	}

	return nil
}

func promptValue(line *liner.State, prompt string) (string, error) {
	value, err := line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errPromptAborted
		}

		return "", err
	}

	return strings.TrimSpace(value), nil
}

func completerFor(options []string) liner.Completer {
	return func(prefix string) []string {
		var matches []string

		for _, opt := range options {
			if strings.HasPrefix(opt, strings.ToLower(prefix)) {
				matches = append(matches, opt)
			}
		}

		return matches
	}
}
