package speech

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/hammamikhairi/robobarista/internal/domain"
)

// BuildSSML renders an utterance plan as an SSML document for the given
// voice. Consecutive segments sharing rate and volume are merged into one
// <prosody> element; pauses become <break/> elements.
func BuildSSML(voice string, plan domain.Plan) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'><voice name='%s'>`, escape(voice))

	open := false
	var cur domain.Instruction
	closeProsody := func() {
		if open {
			b.WriteString(`</prosody>`)
			open = false
		}
	}

	for _, in := range plan {
		switch in.Kind {
		case domain.InstructionPause:
			closeProsody()
			fmt.Fprintf(&b, `<break time='%dms'/>`, in.Pause.Milliseconds())
		case domain.InstructionSpeak:
			if open && in.Rate == cur.Rate && in.Volume == cur.Volume {
				b.WriteByte(' ')
			} else {
				closeProsody()
				fmt.Fprintf(&b, `<prosody rate='%s' volume='%s'>`, ssmlRate(in.Rate), ssmlVolume(in.Volume))
				open = true
				cur = in
			}
			b.WriteString(escape(in.Text))
		}
	}
	closeProsody()

	b.WriteString(`</voice></speak>`)
	return b.String()
}

// ssmlRate converts words per minute into a percentage relative to
// ReferenceRate. Zero means "use the voice default".
func ssmlRate(wpm int) string {
	if wpm <= 0 {
		return "default"
	}
	pct := float64(wpm-ReferenceRate) / ReferenceRate * 100
	return fmt.Sprintf("%+.0f%%", pct)
}

// ssmlVolume converts a 1.0-is-normal volume into a relative percentage.
func ssmlVolume(v float64) string {
	if v <= 0 {
		return "default"
	}
	return fmt.Sprintf("%+.0f%%", (v-1)*100)
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
