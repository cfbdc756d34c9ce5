package menu

import (
	"strconv"
	"strings"
)

// Line reads one trimmed line. End of input yields "".
func (c *Console) Line(prompt string) string {
	line, err := c.readLine(prompt)
	if err != nil {
		return ""
	}
	return line
}

// Float reads a number, returning def for blank or unparsable input.
func (c *Console) Float(prompt string, def float64) float64 {
	raw := c.Line(prompt)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.Printf("Invalid number, using %s.\n", strconv.FormatFloat(def, 'f', -1, 64))
		return def
	}
	return value
}

// Multiline collects lines until a blank one or end of input.
func (c *Console) Multiline(prompt string) []string {
	c.Println(prompt)
	c.Println("Enter a blank line to finish.")
	var lines []string
	for {
		line, err := c.readLine("» ")
		if err != nil {
			return lines
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			return lines
		}
		lines = append(lines, line)
	}
}
