package testhelpers

// FixtureCubeName is the cube served by the fake Tesseract server.
const FixtureCubeName = "trade_i_baci_a_92"

// FixtureCubeJSON is the schema document for the fixture cube, shaped like
// a /cubes/<name> response from a Tesseract server.
const FixtureCubeJSON = `{
  "name": "trade_i_baci_a_92",
  "annotations": {"source_name": "BACI HS92"},
  "dimensions": [
    {
      "name": "Year",
      "type": "time",
      "default_hierarchy": "Year",
      "annotations": {},
      "hierarchies": [
        {
          "name": "Year",
          "annotations": {},
          "levels": [
            {"name": "Year", "unique_name": null, "annotations": {}, "properties": null}
          ]
        }
      ]
    },
    {
      "name": "HS92",
      "type": "standard",
      "default_hierarchy": "HS92",
      "annotations": {},
      "hierarchies": [
        {
          "name": "HS92",
          "annotations": {},
          "levels": [
            {"name": "HS2", "unique_name": null, "annotations": {}, "properties": null},
            {"name": "HS4", "unique_name": null, "annotations": {}, "properties": null},
            {"name": "HS6", "unique_name": null, "annotations": {}, "properties": null}
          ]
        }
      ]
    },
    {
      "name": "Exporter Country",
      "type": "geo",
      "default_hierarchy": "Geography Exporter",
      "annotations": {},
      "hierarchies": [
        {
          "name": "Geography Exporter",
          "annotations": {},
          "levels": [
            {
              "name": "Continent",
              "unique_name": "Exporter Continent",
              "annotations": {},
              "properties": [
                {"name": "Continent ES", "unique_name": "Exporter Continent Name ES", "caption_set": "es", "annotations": {}}
              ]
            },
            {
              "name": "Country",
              "unique_name": "Exporter Country",
              "annotations": {},
              "properties": [
                {"name": "ISO 2", "unique_name": "Exporter Country ISO 2", "caption_set": null, "annotations": {}},
                {"name": "ISO 3", "unique_name": "Exporter Country ISO 3", "caption_set": null, "annotations": {}}
              ]
            }
          ]
        }
      ]
    },
    {
      "name": "Importer Country",
      "type": "geo",
      "default_hierarchy": "Geography Importer",
      "annotations": {},
      "hierarchies": [
        {
          "name": "Geography Importer",
          "annotations": {},
          "levels": [
            {
              "name": "Continent",
              "unique_name": "Importer Continent",
              "annotations": {},
              "properties": null
            },
            {
              "name": "Country",
              "unique_name": "Importer Country",
              "annotations": {},
              "properties": [
                {"name": "ISO 2", "unique_name": "Importer Country ISO 2", "caption_set": null, "annotations": {}},
                {"name": "ISO 3", "unique_name": "Importer Country ISO 3", "caption_set": null, "annotations": {}},
                {"name": "ID Number", "unique_name": "Importer Country ID Number", "caption_set": null, "annotations": {}},
                {"name": "Feenstra ID", "unique_name": null, "caption_set": null, "annotations": {}}
              ]
            }
          ]
        }
      ]
    }
  ],
  "measures": [
    {"name": "Trade Value", "aggregator": {"name": "sum"}, "annotations": {}},
    {"name": "Quantity", "aggregator": {"name": "sum"}, "annotations": {}}
  ]
}`

// FixtureMembersJSON is a members.jsonrecords response for the Year level.
const FixtureMembersJSON = `{
  "data": [
    {"ID": 2014, "Label": "2014", "ES Label": "2014"},
    {"ID": 2015, "Label": "2015", "ES Label": "2015"},
    {"ID": 2016, "Label": "2016", "ES Label": "2016"},
    {"ID": 2017, "Label": "2017", "ES Label": "2017"},
    {"ID": 2018, "Label": "2018", "ES Label": "2018"},
    {"ID": 2019, "Label": "2019", "ES Label": "2019"},
    {"ID": 2020, "Label": "2020", "ES Label": "2020"}
  ]
}`
