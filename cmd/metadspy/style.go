package main

import "github.com/charmbracelet/lipgloss"

var (
	checkMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true).Render("✓")
	crossMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true).Render("✗")
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)
