package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/patrickprogramme/autosub/internal/clipboard"
	"github.com/patrickprogramme/autosub/internal/lang"
	"github.com/patrickprogramme/autosub/internal/yt"
)

type terminalUI struct {
	reader *bufio.Reader
}

func NewTerminal() Interface {
	return &terminalUI{reader: bufio.NewReader(os.Stdin)}
}

func (t *terminalUI) GetYtURL(ctx context.Context) (string, error) {
	// 1) clipboard
	if clip, err := clipboard.ReadAll(); err == nil {
		if yt.IsYouTubeURL(clip) {
			t.PrintInfo(ctx, fmt.Sprintf("Utilisation de l'URL depuis le presse-papier: %s", clip))
			return clip, nil
		}
	}
	// 2) prompt
	for {
		fmt.Print("Entrez l'URL d'une vidéo Youtube: ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("lecture stdin: %w", err)
		}
		url := strings.TrimSpace(input)
		if yt.IsYouTubeURL(url) {
			return url, nil
		}
		fmt.Println("❌ URL invalide. Essayez à nouveau.")
	}
}

// GetLanguage affiche le menu numéroté puis lit un numéro OU un nom de langue.
// Entrée vide ou invalide -> lang.Unknown (on transcrit sans indice de langue).
func (t *terminalUI) GetLanguage(ctx context.Context) (string, error) {
	fmt.Println("Langue de la vidéo :")
	for i, opt := range lang.Options {
		fmt.Printf("  %2d) %s\n", i, opt)
	}
	fmt.Print("Entrez le numéro (ou le nom) de la langue [0]: ")

	input, err := t.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("lecture stdin: %w", err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return lang.Unknown, nil
	}

	if n, nerr := strconv.Atoi(input); nerr == nil {
		if n >= 0 && n < len(lang.Options) {
			return lang.Options[n], nil
		}
		fmt.Println("Numéro hors limites, langue inconnue utilisée.")
		return lang.Unknown, nil
	}

	return lang.Normalize(input), nil
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Println("\n\nAppuyez sur Ctrl+C pour quitter.")

	// Prépare le canal pour les signaux d'interruption
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done(): // Context annulé ailleurs
		return ctx.Err()
	case <-sigCh: // Reçu Ctrl+C (SIGINT ou SIGTERM)
		return nil
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Println(s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(os.Stderr, s)
}
