package schema

// projectSchemaYAML describes the subset of the project file this action
// cares about. additionalProperties is closed on purpose: an unknown key
// is almost always a typo, and findings are warnings anyway.
const projectSchemaYAML = `
$schema: https://json-schema.org/draft/2020-12/schema
title: Project configuration
type: object
additionalProperties: false
properties:
  name:
    type: string
  version:
    type: number
  scope:
    type: string
  alias:
    oneOf:
      - type: string
      - type: array
        items:
          type: string
  regions:
    type: array
    items:
      type: string
  public:
    type: boolean
  cleanUrls:
    type: boolean
  trailingSlash:
    type: boolean
  env:
    type: object
  build:
    type: object
  buildCommand:
    type: [string, "null"]
  devCommand:
    type: [string, "null"]
  installCommand:
    type: [string, "null"]
  outputDirectory:
    type: [string, "null"]
  framework:
    type: [string, "null"]
  builds:
    type: array
    items:
      type: object
      required: [src]
      properties:
        src:
          type: string
        use:
          type: string
        config:
          type: object
  routes:
    type: array
    items:
      type: object
  redirects:
    type: array
    items:
      type: object
      required: [source, destination]
  headers:
    type: array
    items:
      type: object
  rewrites:
    type: array
    items:
      type: object
      required: [source, destination]
  crons:
    type: array
    items:
      type: object
      required: [path, schedule]
  functions:
    type: object
  github:
    type: object
    properties:
      enabled:
        type: boolean
      silent:
        type: boolean
`
