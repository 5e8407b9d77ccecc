package rag

// The three fixed analytical queries. Each tier pairs one query with a
// context focus; the queries are constant per transcript.

const tierAQuery = `Analyze this earnings call transcript and identify 4-8 key bullet factors that likely contributed to the post-earnings price reaction.
For each factor, provide:
1. A clear, concise bullet point
2. Whether it's positive, negative, or neutral
3. A confidence score (0-100)
4. A specific citation from the transcript

Focus on: revenue performance, guidance changes, margin trends, strategic announcements, and market reactions.`

const tierBQuery = `Write a clear, jargon-free summary of this earnings call that a non-finance person can understand.
Target reading level: Grade 10-12
Define all financial terms inline
Focus on: what the company does, how they performed, what they expect, and why it matters`

const tierCQuery = `Provide a sophisticated expert analysis including:
1. Quantitative extracts (growth rates, margins, guidance deltas, unit economics)
2. Segment performance analysis
3. Risk factors and concerns
4. Key analyst Q&A highlights
5. Forward-looking indicators

Cite specific claims with transcript references.`
