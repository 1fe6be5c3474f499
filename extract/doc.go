// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package extract turns a photographed DR form into structured counts.

# Pipeline

Extract runs the full pipeline for one image:

	ex := extract.New(cfg.ExtractorURL)
	out := ex.Extract(ctx, imageURL, candidateNames)

The image URL is sent to the remote OCR endpoint, which returns the
form as plain text. ParseTallyText then reads candidate vote lines and
the voter statistics section out of that text.

# Parsing

The parser works line by line and accepts the layouts DR forms show up
in: dotted leaders ("John Mensah ...... 120"), separator characters
("Male Voters: 110"), and bare label-number lines. Voter statistic
labels are matched by synonym (male/men, female/women, wasted/spoilt/
rejected/invalid, total/turnout) before candidate matching, and
candidate names match exactly, by containment, or by surname. The
reported total is raised to male+female when it is missing or lower.

# Placeholder Fallback

Extraction never fails a submission. When the endpoint is unset,
unreachable, or the text is unparseable, Extract returns deterministic
placeholder counts derived from an FNV hash of the image URL and
candidate name, with Success false and the upload marked accordingly.
Unmatched candidates get placeholder votes within an otherwise
successful extraction.
*/
package extract
