package mcpserver

// DatasetFormat documents the YAML dataset the engine is built from.
const DatasetFormat = `# careergraph Dataset Format

A dataset is one YAML document with two lists.

` + "```" + `yaml
titles:
  - id: 1                 # REQUIRED, non-zero, unique
    name: Analyst         # REQUIRED, unique
    next: [2]             # OPTIONAL NEXT_TITLE successors, in display order
  - id: 2
    name: Senior Analyst

people:
  - id: 101               # REQUIRED, non-zero, unique
    name: Alice           # REQUIRED, unique
    held: [1, 2]          # titles held, oldest first
  - id: 102
    name: Bob
    held:
      - {title: 2, seq: 1}   # explicit order; sorted by seq
      - {title: 1, seq: 0}
` + "```" + `

## Rules

1. Title and person ids live in separate namespaces; a title and a person may share a number.
2. ` + "`next`" + ` must only reference declared titles and must not form a cycle.
3. ` + "`held`" + ` entries are a bare title id or a mapping with ` + "`title`" + ` and an optional
   non-negative ` + "`seq`" + `. Entries without ` + "`seq`" + ` use their list position.
4. A title may appear more than once in ` + "`held`" + `.
5. The last ` + "`held`" + ` entry is the person's current title.
`
