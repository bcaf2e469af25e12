package format

import (
	"github.com/mizpos/print-engine/internal/escpos"
)

// PrintTestPage prints a connectivity test page: a styled banner, the
// terminal identity, and sample lines from each Japanese script so a
// misconfigured code table is obvious on paper.
func PrintTestPage(p *escpos.Printer, terminalID string) error {
	if err := p.Init(); err != nil {
		return err
	}

	banner := escpos.TextStyle{Bold: true, Underline: true, Align: escpos.AlignCenter}
	if err := p.StyledTextln("WELCOME TO mizPOS", banner); err != nil {
		return err
	}
	if err := p.Textln(""); err != nil {
		return err
	}
	if err := p.StyledTextln("接続テスト完了", escpos.TextStyle{Align: escpos.AlignCenter}); err != nil {
		return err
	}
	if err := p.Textln(""); err != nil {
		return err
	}

	if err := p.Separator(); err != nil {
		return err
	}
	if err := p.RowAuto("ターミナルID:", terminalID); err != nil {
		return err
	}
	if err := p.Separator(); err != nil {
		return err
	}
	if err := p.Textln(""); err != nil {
		return err
	}

	if err := p.StyledTextln("日本語印刷テスト", escpos.TextStyle{Bold: true}); err != nil {
		return err
	}
	if err := p.Textln("ひらがな: あいうえお"); err != nil {
		return err
	}
	if err := p.Textln("カタカナ: アイウエオ"); err != nil {
		return err
	}
	if err := p.Textln("漢字: 東京都渋谷区"); err != nil {
		return err
	}
	if err := p.Textln(""); err != nil {
		return err
	}

	if err := p.Feed(3); err != nil {
		return err
	}
	return p.Cut()
}
